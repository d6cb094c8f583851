package stylesheet_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/starmap/internal/adapters/stylesheet"
	"go.trai.ch/starmap/internal/core/domain"
)

func TestStore_BorderStyle(t *testing.T) {
	store, err := stylesheet.FromString("border.Im { color: #FF0000; style: Dashed }")
	require.NoError(t, err)

	assert.Equal(t, domain.BorderStyle{Color: "#FF0000", Style: domain.LineStyleDashed}, store.BorderStyle("Im"))
	assert.Equal(t, domain.BorderStyle{}, store.BorderStyle("Xx"))
}

func TestStore_UnicodeKeys(t *testing.T) {
	store, err := stylesheet.FromString("border.Zhodanié { color: #0000FF; style: solid }")
	require.NoError(t, err)

	assert.Equal(t, domain.BorderStyle{Color: "#0000FF", Style: domain.LineStyleSolid}, store.BorderStyle("Zhodanié"))
	assert.Equal(t, []string{"Zhodanié"}, store.BorderKeys())
}

func TestStore_RouteStyle(t *testing.T) {
	store, err := stylesheet.FromString(`
route.Xb { color: teal; style: DOTTED; width: 0.75 }
route.Fe { color: grey; width: thick }
route.Tr { style: wavy }
`)
	require.NoError(t, err)

	assert.Equal(t, domain.RouteStyle{Color: "teal", Style: domain.LineStyleDotted, Width: 0.75, HasWidth: true}, store.RouteStyle("Xb"))
	assert.Equal(t, domain.RouteStyle{Color: "grey"}, store.RouteStyle("Fe"), "unparseable width is unset")
	assert.Equal(t, domain.RouteStyle{}, store.RouteStyle("Tr"), "unknown style is unset")
	assert.Equal(t, domain.RouteStyle{}, store.RouteStyle("missing"))
}

func TestStore_IgnoresOtherSelectors(t *testing.T) {
	store, err := stylesheet.FromString("border { color: red } world.Im { color: blue } route. { color: x }")
	require.NoError(t, err)

	assert.Empty(t, store.BorderKeys())
	assert.Empty(t, store.RouteKeys())
}

func TestStore_Keys(t *testing.T) {
	store, err := stylesheet.FromString("border.Zh, border.Im { color: red } route.B { width: 1 } route.A { width: 2 }")
	require.NoError(t, err)

	assert.Equal(t, []string{"Im", "Zh"}, store.BorderKeys())
	assert.Equal(t, []string{"A", "B"}, store.RouteKeys())
}

func TestDefault(t *testing.T) {
	store, err := stylesheet.Default()
	require.NoError(t, err)

	assert.Equal(t, domain.BorderStyle{Color: "#FF0000", Style: domain.LineStyleSolid}, store.BorderStyle("Im"))
	assert.True(t, store.RouteStyle("Im").HasWidth)
	assert.Contains(t, store.BorderKeys(), "Hv")
	assert.Contains(t, store.BorderKeys(), "Hi")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.css")
	require.NoError(t, os.WriteFile(path, []byte("border.Im { color: #00FF00 }"), 0o600))

	store, err := stylesheet.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#00FF00", store.BorderStyle("Im").Color)

	store, err = stylesheet.Load("")
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", store.BorderStyle("Im").Color)
}

func TestLoad_Errors(t *testing.T) {
	_, err := stylesheet.Load(filepath.Join(t.TempDir(), "absent.css"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStyleSheetReadFailed)

	path := filepath.Join(t.TempDir(), "broken.css")
	require.NoError(t, os.WriteFile(path, []byte("border.Im { color: red"), 0o600))
	_, err = stylesheet.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)
}
