package vectorstore

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// On-disk index layout: 4-byte magic, uint32 dimension, uint32 row count,
// then count*dim float32 values row-major, all little endian.
var indexMagic = [4]byte{'S', 'V', 'S', '1'}

func writeIndex(path string, vectors [][]float32, dim int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.Write(indexMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(dim)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(vectors))); err != nil {
		return err
	}
	for _, v := range vectors {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

func readIndex(path string) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, err
	}
	if magic != indexMagic {
		return nil, fmt.Errorf("not a vector index file")
	}
	var dim, count uint32
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	if dim == 0 {
		return nil, fmt.Errorf("zero-dimension index")
	}

	vectors := make([][]float32, count)
	for i := range vectors {
		v := make([]float32, dim)
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("truncated index at row %d: %w", i, err)
		}
		vectors[i] = v
	}
	return vectors, nil
}
