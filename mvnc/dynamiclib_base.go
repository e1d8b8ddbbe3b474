/*
 *	Copyright 2024 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

package mvnc

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// This file holds common definitions for the different implementations of dynamiclib (linux, darwin).

const (
	// LibraryPathsEnv is the name of the environment variable that define the search paths for libmvnc.
	LibraryPathsEnv = "MVNC_LIBRARY_PATH"

	// DefaultLibraryName is the name of the Movidius NCSDK library, as in "libmvnc.so".
	DefaultLibraryName = "mvnc"
)

var (
	// librarySearchPaths is set during initialization by the per-architecture implementations (dynamiclib_<arch>.go files).
	//
	// Libraries are searched in the MVNC_LIBRARY_PATH directory -- or directories, if it is a ":" separated list.
	// If it is not set it will search in "/usr/local/lib" and the standard libraries directories of the
	// system (in linux in LD_LIBRARY_PATH and /etc/ld.so.conf file).
	librarySearchPaths []string

	// loadedLibraries caches the libraries already loaded. Protected by muLibraries.
	loadedLibraries = make(map[string]*Library)
	muLibraries     sync.Mutex
)

// dllHandleWrapper encapsulates a handle to the dynamically loaded library, and provides a minimal
// interface to resolve its symbols and to close it.
//
// It is created with loadLibrary (architecture specific).
type dllHandleWrapper interface {
	// GetSymbolPointer returns the C pointer to the given symbol.
	GetSymbolPointer(symbol string) (unsafe.Pointer, error)

	// Close handle, after which the symbols are no longer valid.
	Close() error
}

func init() {
	libPaths, found := os.LookupEnv(LibraryPathsEnv)
	if !found {
		librarySearchPaths = osDefaultLibraryPaths()
	} else {
		librarySearchPaths = slices.DeleteFunc(strings.Split(libPaths, ":"), func(p string) bool {
			return p == "" // Remove empty paths.
		})
	}
}

// loadNamedLibrary loads the library with the given name or absolute path, or returns the cached one.
//
// It uses a mutex to serialize (make it safe) calls from different goroutines.
func loadNamedLibrary(name string) (*Library, error) {
	muLibraries.Lock()
	defer muLibraries.Unlock()

	// Search previously loaded library: match by name or by path (if the name given is an absolute path).
	if lib, found := loadedLibraries[name]; found {
		return lib, nil
	}
	if path.IsAbs(name) {
		for _, lib := range loadedLibraries {
			if lib.Path() == name {
				return lib, nil
			}
		}
	}

	// Search path to library -- except if name is an absolute path.
	libPath := name
	if !path.IsAbs(libPath) {
		var found bool
		libPath, found = searchLibrary(name)
		if !found {
			// Leave it to the system dynamic loader.
			libPath = osLibraryFileName(name)
			klog.V(1).Infof("library %q not found in paths %v, trying the system loader with %q",
				name, librarySearchPaths, libPath)
		}
	}
	klog.V(1).Infof("attempting to load library from %s", libPath)

	handle, err := loadLibrary(libPath)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to load libmvnc for name %q: set %s to the directory(ies) "+
			"where lib%s is installed", name, LibraryPathsEnv, name)
	}
	drv, err := newCDriver(handle)
	if err != nil {
		err2 := handle.Close()
		if err2 != nil {
			klog.Warningf("Failed to close dynamic library %q: %v", libPath, err2)
		}
		return nil, errors.WithMessagef(err, "loaded library %q for name %q, but it is not a compatible libmvnc", libPath, name)
	}
	lib := newLibrary(name, libPath, drv)
	lib.dllHandle = handle
	loadedLibraries[name] = lib
	return lib, nil
}

var (
	// Pattern to extract the name from the library file names, e.g.: "/usr/local/lib/libmvnc.so.0".
	reLibraryName = regexp.MustCompile(`^.*/lib(\w+)\.(so|dylib)(\.[0-9.]+)?$`)
)

// pathToLibraryName returns the name of the library if it's a matching library path, otherwise returns "".
func pathToLibraryName(libPath string) string {
	subMatches := reLibraryName.FindStringSubmatch(libPath)
	if len(subMatches) < 2 {
		return ""
	}
	return subMatches[1]
}

// AvailableLibraries searches for libmvnc versions in the standard directories and returns a map from their
// name to their paths.
//
// Libraries are searched in the MVNC_LIBRARY_PATH directory -- or directories, if it is a ":" separated list.
// If it is not set it will search in "/usr/local/lib" and the standard libraries directories of the
// system (in linux in LD_LIBRARY_PATH and /etc/ld.so.conf file, in Darwin it also searches in DYLD_LIBRARY_PATH) in
// that order.
//
// Only files that export all the libmvnc functions used are listed.
func AvailableLibraries() (libraryPaths map[string]string) {
	muLibraries.Lock()
	defer muLibraries.Unlock()
	return searchLibraries("")
}

func searchLibrary(searchName string) (path string, found bool) {
	path, found = searchLibraries(searchName)[searchName]
	return
}

// searchLibraries must be called with muLibraries locked.
func searchLibraries(searchName string) (libraryPaths map[string]string) {
	libraryPaths = make(map[string]string)

	// Include libraries already loaded.
	for name, lib := range loadedLibraries {
		if searchName != "" && searchName != name {
			continue
		}
		libraryPaths[name] = lib.Path()
	}

	pattern := "libmvnc*"
	if searchName != "" {
		pattern = "lib" + searchName + ".*"
	}
	for _, searchPath := range librarySearchPaths {
		candidates, err := filepath.Glob(path.Join(searchPath, pattern))
		if err != nil {
			continue
		}
		slices.Sort(candidates) // Prefer the unversioned "libmvnc.so" over "libmvnc.so.0".
		for _, candidate := range candidates {
			name := pathToLibraryName(candidate)
			if name == "" {
				continue
			}
			if searchName != "" && searchName != name {
				continue
			}
			if _, found := libraryPaths[name]; found {
				// We already have a library with that name.
				continue
			}
			if err := checkLibrary(candidate); err != nil {
				klog.V(1).Infof("skipping %q: %v", candidate, err)
				continue
			}
			libraryPaths[name] = candidate
		}
	}
	return
}

// checkLibrary tries to dlopen the library and verify that all the libmvnc functions are exported.
//
// The handle returned by dlopen is properly closed.
func checkLibrary(libPath string) error {
	handle, err := loadLibrary(libPath)
	if err != nil {
		return err
	}
	defer func() {
		err2 := handle.Close()
		if err2 != nil {
			klog.Warningf("Failed to close dynamic library %q: %v", libPath, err2)
		}
	}()
	for _, symbol := range mvncSymbols {
		if _, err := handle.GetSymbolPointer(symbol); err != nil {
			return err
		}
	}
	return nil
}
