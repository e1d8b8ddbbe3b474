package mvnc

import (
	"github.com/gomlx/gomvnc/dtypes"
	"github.com/pkg/errors"
)

// SubmitTensor submits the values as the input tensor of the graph, see Graph.Submit.
//
// Most graphs compiled for the Movidius take float16 inputs: use dtypes.Float16s to convert float32 values.
func SubmitTensor[T dtypes.Supported](g *Graph, values []T) (uint64, error) {
	return g.Submit(dtypes.ToBytes(values))
}

// RetrieveTensor retrieves the result of the oldest request in flight as a slice of T, see Graph.Retrieve.
func RetrieveTensor[T dtypes.Supported](g *Graph) (uint64, []T, error) {
	id, output, err := g.Retrieve(dtypes.SizeOf[T]())
	if err != nil {
		return id, nil, err
	}
	values, err := dtypes.FromBytes[T](output)
	if err != nil {
		return id, nil, errors.WithMessagef(err, "failed to decode result of request #%d", id)
	}
	return id, values, nil
}
