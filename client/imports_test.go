package client

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// client and api must not pull in the server stack.
func TestClientImportsStayLight(t *testing.T) {
	banned := []string{
		"github.com/cppla/threadbbs/services",
		"github.com/cppla/threadbbs/models",
		"github.com/cppla/threadbbs/config",
		"github.com/cppla/threadbbs/utils",
		"gorm.io/",
	}
	for _, dir := range []string{".", "../api"} {
		files, err := filepath.Glob(filepath.Join(dir, "*.go"))
		require.NoError(t, err)
		require.NotEmpty(t, files, dir)
		for _, path := range files {
			if strings.HasSuffix(path, "_test.go") {
				continue
			}
			f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ImportsOnly)
			require.NoError(t, err)
			for _, imp := range f.Imports {
				p, err := strconv.Unquote(imp.Path.Value)
				require.NoError(t, err)
				for _, b := range banned {
					assert.False(t, strings.HasPrefix(p, b), "%s imports %s", path, p)
				}
			}
		}
	}
}
