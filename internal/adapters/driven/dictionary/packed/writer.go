package packed

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.DictionaryWriter = (*Writer)(nil)

// Writer serialises a store in the packed format.
type Writer struct{}

// NewWriter creates a packed writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Format returns FormatBinary.
func (w *Writer) Format() domain.DictionaryFormat {
	return Format
}

// Write encodes store and replaces path atomically.
func (w *Writer) Write(ctx context.Context, store driven.DictionaryStore, path string) error {
	data, err := Encode(store)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// Encode returns the packed form of store.
func Encode(store driven.DictionaryStore) ([]byte, error) {
	rules := store.Rules()
	if len(rules) > maxCount || store.Len() > maxCount {
		return nil, fmt.Errorf("%w: dictionary too large", domain.ErrInvalidInput)
	}

	var buf bytes.Buffer
	buf.WriteString(Magic)
	buf.Write(binary.LittleEndian.AppendUint16(nil, Version))
	buf.Write(binary.LittleEndian.AppendUint16(nil, 0))
	buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(rules))))
	buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(store.Len())))

	for _, r := range rules {
		buf.WriteByte(byte(r.Kind))
		buf.Write(binary.LittleEndian.AppendUint16(nil, r.Priority))
		writeString(&buf, r.Affix)
		buf.Write(binary.LittleEndian.AppendUint64(nil, uint64(r.Patterns)))
	}

	prev := ""
	for e := range store.All() {
		shared := commonPrefix(prev, e.Stem)
		buf.Write(binary.AppendUvarint(nil, uint64(shared)))
		writeString(&buf, e.Stem[shared:])
		buf.Write(binary.LittleEndian.AppendUint64(nil, uint64(e.Patterns)))
		buf.WriteByte(byte(e.POS))
		buf.Write(binary.AppendUvarint(nil, uint64(e.Frequency)))
		prev = e.Stem
	}

	sum := crc32.ChecksumIEEE(buf.Bytes())
	buf.Write(binary.LittleEndian.AppendUint32(nil, sum))
	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) {
	buf.Write(binary.AppendUvarint(nil, uint64(len(s))))
	buf.WriteString(s)
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write dictionary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close dictionary: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename dictionary: %w", err)
	}
	return nil
}
