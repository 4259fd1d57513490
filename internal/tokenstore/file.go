package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File — файловое хранилище: одна JSON-запись, права 0600.
// Атомарность Save обеспечивается записью во временный файл
// в том же каталоге и rename поверх целевого.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile создает файловое хранилище по пути path.
// Каталог создается при первом Save, не здесь: конструктор не должен
// иметь побочных эффектов на ФС.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("tokenstore.NewFile: empty path")
	}

	return &File{path: path}, nil
}

var _ Store = (*File)(nil)

// Save перезаписывает запись целиком (temp-file + rename).
func (f *File) Save(rec Record) error {
	const op = "tokenstore.file.Save"

	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(dir, ".tokens-*")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if err := tmp.Chmod(0o600); err != nil {
		cleanup()
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Read возвращает текущую запись или ErrNotFound.
func (f *File) Read() (Record, error) {
	const op = "tokenstore.file.Read"

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, ErrNotFound
		}

		return Record{}, fmt.Errorf("%s: %w", op, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		// Битый файл равносилен отсутствию токенов: пользователю придётся
		// перелогиниться, что безопаснее, чем работать с мусором.
		return Record{}, ErrNotFound
	}

	if rec.AccessToken == "" && rec.RefreshToken == "" {
		return Record{}, ErrNotFound
	}

	return rec, nil
}

// Clear удаляет файл с токенами; отсутствие файла — не ошибка.
func (f *File) Clear() error {
	const op = "tokenstore.file.Clear"

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
