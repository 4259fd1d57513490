// deviceid — стабильный идентификатор установки клиента.
// Генерируется один раз (uuid v4), хранится рядом с токенами и уходит
// в X-Device-Id каждого запроса: бэкенд по нему связывает sessions/pushes.
package deviceid

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Load возвращает сохранённый device id или генерирует и сохраняет новый.
func Load(path string) (string, error) {
	const op = "deviceid.Load"

	data, err := os.ReadFile(path)
	if err == nil {
		id := strings.TrimSpace(string(data))
		if _, perr := uuid.Parse(id); perr == nil {
			return id, nil
		}
		// Битое содержимое — перегенерируем.
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id := uuid.NewString()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}
