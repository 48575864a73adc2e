package tools

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StoredFileName gera o nome de arquivo gravado em disco: uuid + extensão
// original. O nome original fica só no registro do anexo.
func StoredFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.NewString() + ext
}
