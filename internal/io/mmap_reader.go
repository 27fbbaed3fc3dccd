// Package io provides the memory-mapped file reader ingest uses to read
// large CSV files without a second full-size heap copy.
package io

import (
	"fmt"
	"os"
	"syscall"
)

// MMapReader provides memory-mapped file I/O for efficient large file processing
type MMapReader struct {
	file       *os.File
	data       []byte
	size       int64
	offset     int64
	chunkSize  int64
	isMapped   bool
	useMmap    bool
}

// MMapConfig contains configuration for memory-mapped reading
type MMapConfig struct {
	ChunkSize    int64  // Size of chunks to map
	MaxMapSize   int64  // Maximum size to memory map
	UseMmap      bool   // Whether to use memory mapping
	FallbackSize int64  // Defaulted when zero, not otherwise read: regular I/O also reads ChunkSize bytes at a time
}

// DefaultMMapConfig returns a default configuration
func DefaultMMapConfig() MMapConfig {
	return MMapConfig{
		ChunkSize:    64 * 1024 * 1024, // 64MB chunks
		MaxMapSize:   512 * 1024 * 1024, // 512MB max map size
		UseMmap:      true,
		FallbackSize: 1024 * 1024, // 1MB
	}
}

// NewMMapReader creates a new memory-mapped file reader
func NewMMapReader(filePath string, config MMapConfig) (*MMapReader, error) {
	if config.ChunkSize == 0 {
		config.ChunkSize = DefaultMMapConfig().ChunkSize
	}
	if config.MaxMapSize == 0 {
		config.MaxMapSize = DefaultMMapConfig().MaxMapSize
	}
	if config.FallbackSize == 0 {
		config.FallbackSize = DefaultMMapConfig().FallbackSize
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	// Get file size
	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	size := fileInfo.Size()
	
	// Determine if we should use memory mapping
	useMmap := config.UseMmap && size <= config.MaxMapSize && size > 0
	
	reader := &MMapReader{
		file:      file,
		size:      size,
		chunkSize: config.ChunkSize,
		isMapped:  false,
		useMmap:   useMmap,
		offset:    0,
	}

	// Try to memory map the file if enabled
	if useMmap {
		if err := reader.mmapFile(); err != nil {
			// Fall back to regular I/O if memory mapping fails
			reader.useMmap = false
			fmt.Printf("Warning: Memory mapping failed, falling back to regular I/O: %v\n", err)
		}
	}

	return reader, nil
}

// mmapFile memory maps the entire file
func (r *MMapReader) mmapFile() error {
	if r.size <= 0 {
		return fmt.Errorf("invalid file size: %d", r.size)
	}

	// Memory map the file
	data, err := syscall.Mmap(int(r.file.Fd()), 0, int(r.size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("memory mapping failed: %w", err)
	}

	r.data = data
	r.isMapped = true
	return nil
}

// ReadChunk reads the next chunk of data from the file
func (r *MMapReader) ReadChunk() ([]byte, error) {
	if r.offset >= r.size {
		return nil, nil // EOF
	}

	if r.useMmap && r.isMapped {
		return r.readMappedChunk()
	}

	return r.readRegularChunk()
}

// readMappedChunk reads a chunk from memory-mapped data
func (r *MMapReader) readMappedChunk() ([]byte, error) {
	if r.offset >= r.size {
		return nil, nil // EOF
	}

	// Calculate chunk boundaries
	start := r.offset
	end := start + r.chunkSize
	if end > r.size {
		end = r.size
	}

	// Extract chunk from mapped data
	chunk := r.data[start:end]
	r.offset = end

	return chunk, nil
}

// readRegularChunk reads a chunk using regular I/O
func (r *MMapReader) readRegularChunk() ([]byte, error) {
	if r.offset >= r.size {
		return nil, nil // EOF
	}

	// Calculate chunk size
	chunkSize := r.chunkSize
	remaining := r.size - r.offset
	if remaining < chunkSize {
		chunkSize = remaining
	}

	// Allocate buffer for chunk
	chunk := make([]byte, chunkSize)

	// Seek to offset
	_, err := r.file.Seek(r.offset, 0)
	if err != nil {
		return nil, fmt.Errorf("seek failed: %w", err)
	}

	// Read chunk
	n, err := r.file.Read(chunk)
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}

	r.offset += int64(n)
	return chunk[:n], nil
}

// Size returns the total size of the file
func (r *MMapReader) Size() int64 {
	return r.size
}

// IsMapped returns true if the file is memory mapped
func (r *MMapReader) IsMapped() bool {
	return r.isMapped
}

// Close closes the reader and unmaps the file if necessary
func (r *MMapReader) Close() error {
	var err error

	// Unmap file if memory mapped
	if r.isMapped && r.data != nil {
		if unmapErr := syscall.Munmap(r.data); unmapErr != nil {
			err = fmt.Errorf("unmap failed: %w", unmapErr)
		}
		r.data = nil
		r.isMapped = false
	}

	// Close file
	if r.file != nil {
		if closeErr := r.file.Close(); closeErr != nil {
			if err != nil {
				err = fmt.Errorf("%v; close failed: %w", err, closeErr)
			} else {
				err = fmt.Errorf("close failed: %w", closeErr)
			}
		}
		r.file = nil
	}

	return err
}

