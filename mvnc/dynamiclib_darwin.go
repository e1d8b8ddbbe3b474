//go:build darwin

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
	"strings"
)

// osDefaultLibraryPaths is called during initialization to set the default search paths.
// It always includes the system default "/usr/local/lib", plus the contents of the LD_LIBRARY_PATH and
// DYLD_LIBRARY_PATH.
func osDefaultLibraryPaths() []string {
	paths := []string{"/usr/local/lib", "/opt/homebrew/lib"}

	// Standard environment variables.
	for _, varName := range []string{"DYLD_LIBRARY_PATH", "LD_LIBRARY_PATH"} {
		for _, ldPath := range strings.Split(os.Getenv(varName), string(os.PathListSeparator)) {
			if ldPath == "" || !path.IsAbs(ldPath) {
				// No empty or relative paths.
				continue
			}
			paths = append(paths, ldPath)
		}
	}
	return paths
}

// osLibraryFileName returns the file name the system dynamic loader uses for the library name.
func osLibraryFileName(name string) string {
	return "lib" + name + ".dylib"
}
