package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

var routerAnnotation = regexp.MustCompile(`(?m)^// @Router (\S+) \[(\w+)\]`)

type swaggerDoc struct {
	BasePath    string                                `json:"basePath"`
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func readDoc(t *testing.T) swaggerDoc {
	t.Helper()
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestDocCoversEveryRoute(t *testing.T) {
	doc := readDoc(t)
	assert.Equal(t, "/api/v1", doc.BasePath)

	files, err := filepath.Glob(filepath.Join("..", "internal", "transport", "rest", "*.go"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	routes := 0
	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		src, err := os.ReadFile(file)
		require.NoError(t, err)

		for _, m := range routerAnnotation.FindAllStringSubmatch(string(src), -1) {
			routes++
			path, method := m[1], m[2]
			operations, ok := doc.Paths[path]
			if !assert.True(t, ok, "нет пути %s (%s)", path, filepath.Base(file)) {
				continue
			}
			assert.Contains(t, operations, method, "нет метода %s %s", method, path)
		}
	}
	assert.Greater(t, routes, 0)

	documented := 0
	for _, operations := range doc.Paths {
		documented += len(operations)
	}
	assert.Equal(t, routes, documented)
}

func TestDocDefinitionsResolve(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)
	doc := readDoc(t)

	refs := regexp.MustCompile(`"#/definitions/([^"]+)"`).FindAllStringSubmatch(raw, -1)
	require.NotEmpty(t, refs)
	for _, ref := range refs {
		assert.Contains(t, doc.Definitions, ref[1])
	}
}
