// Package chunk provides chunk-grid math and assembly of per-chunk
// buffers into a full C-order array buffer.
//
// Zarr stores one object per chunk, keyed by the chunk's grid indices.
// Edge chunks are stored at the full chunk shape; only the region that
// overlaps the array shape is meaningful.
package chunk

import (
	"strconv"
	"strings"
)

// GridShape returns the number of chunks per dimension,
// ceil(shape[i] / chunks[i]).
func GridShape(shape, chunks []int) []int {
	grid := make([]int, len(shape))
	for i := range shape {
		grid[i] = (shape[i] + chunks[i] - 1) / chunks[i]
	}
	return grid
}

// NumElements returns the product of dims.
func NumElements(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// Key returns the storage key suffix for a chunk, e.g. "1.4" for
// separator "." or "1/4" for separator "/". A 0-D array's single chunk
// is keyed "0".
func Key(indices []int, separator string) string {
	if len(indices) == 0 {
		return "0"
	}

	var sb strings.Builder
	for i, idx := range indices {
		if i > 0 {
			sb.WriteString(separator)
		}
		sb.WriteString(strconv.Itoa(idx))
	}
	return sb.String()
}

// Next advances indices to the next chunk in row-major order.
// Returns false when the grid is exhausted.
func Next(indices, grid []int) bool {
	for d := len(indices) - 1; d >= 0; d-- {
		indices[d]++
		if indices[d] < grid[d] {
			return true
		}
		indices[d] = 0
	}
	return false
}

// Assemble copies the valid region of a chunk buffer into dst, the
// full array's C-order buffer. shape is the array shape, chunks the
// chunk shape, indices the chunk's grid indices, elemSize the element
// size in bytes.
func Assemble(dst, chunkBuf []byte, shape, chunks, indices []int, elemSize int) {
	ndims := len(shape)
	if ndims == 0 {
		copy(dst, chunkBuf[:elemSize])
		return
	}

	// Chunk origin within the array and clipped extent.
	origin := make([]int, ndims)
	count := make([]int, ndims)
	for d := 0; d < ndims; d++ {
		origin[d] = indices[d] * chunks[d]
		count[d] = chunks[d]
		if rest := shape[d] - origin[d]; count[d] > rest {
			count[d] = rest
		}
	}

	// Row-major strides, in bytes.
	srcStrides := make([]int, ndims)
	dstStrides := make([]int, ndims)
	srcStrides[ndims-1] = elemSize
	dstStrides[ndims-1] = elemSize
	for d := ndims - 2; d >= 0; d-- {
		srcStrides[d] = srcStrides[d+1] * chunks[d+1]
		dstStrides[d] = dstStrides[d+1] * shape[d+1]
	}

	assembleRecursive(dst, chunkBuf, origin, count, srcStrides, dstStrides, 0, 0, 0, ndims)
}

func assembleRecursive(
	dst, src []byte,
	origin, count []int,
	srcStrides, dstStrides []int,
	srcOffset, dstOffset int,
	dim, ndims int,
) {
	if dim == ndims-1 {
		rowBytes := count[dim] * srcStrides[dim]
		dstStart := dstOffset + origin[dim]*dstStrides[dim]
		if srcOffset+rowBytes <= len(src) && dstStart+rowBytes <= len(dst) {
			copy(dst[dstStart:dstStart+rowBytes], src[srcOffset:srcOffset+rowBytes])
		}
		return
	}

	for i := 0; i < count[dim]; i++ {
		assembleRecursive(dst, src,
			origin, count, srcStrides, dstStrides,
			srcOffset+i*srcStrides[dim],
			dstOffset+(origin[dim]+i)*dstStrides[dim],
			dim+1, ndims)
	}
}
