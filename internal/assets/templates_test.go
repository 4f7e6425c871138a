package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/lunaword/internal/library"
)

func TestParseDeckTemplate(t *testing.T) {
	tests := []struct {
		name         string
		templatePath string

		wantTemplateName string
	}{
		{
			name: "uses filesystem template when available",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "custom.md.go.tmpl")
				content := `Filesystem Template: {{ .Title }}`
				require.NoError(t, os.WriteFile(templatePath, []byte(content), 0644))
				return templatePath
			}(t),
			wantTemplateName: "custom.md.go.tmpl",
		},
		{
			name:             "uses embedded template when file doesn't exist",
			templatePath:     "/non/existent/invalid.md.go.tmpl",
			wantTemplateName: deckTemplateName,
		},
		{
			name:             "uses embedded template when no path is configured",
			templatePath:     "",
			wantTemplateName: deckTemplateName,
		},
		{
			name: "uses embedded template when filesystem template is invalid",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "invalid.md.go.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte(`Bad: {{ .Unclosed`), 0644))
				return templatePath
			}(t),
			wantTemplateName: deckTemplateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotErr := ParseDeckTemplate(tt.templatePath)
			require.NoError(t, gotErr)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantTemplateName, got.Name())
		})
	}
}

func TestNewDeckTemplate(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	cards := []library.WordCard{
		{Word: "negotiate", Category: "商务"},
		{Word: "apple", Category: "水果"},
		{Word: "contract", Category: "商务"},
	}

	got := NewDeckTemplate("Deck", date, cards)
	assert.Equal(t, "Deck", got.Title)
	require.Len(t, got.Categories, 2)
	assert.Equal(t, "商务", got.Categories[0].Name)
	assert.Equal(t, []library.WordCard{cards[0], cards[2]}, got.Categories[0].Cards)
	assert.Equal(t, "水果", got.Categories[1].Name)
	assert.Equal(t, []library.WordCard{cards[1]}, got.Categories[1].Cards)
}

func TestWriteDeck(t *testing.T) {
	deck := NewDeckTemplate("Luna Words", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), []library.WordCard{
		{
			Word:         "negotiate",
			Phonetic:     "nɪˈɡoʊ.ʃi.eɪt",
			Meaning:      "v. 谈判",
			Category:     "商务",
			Mnemonic:     "你go上谈判桌",
			Roots:        "neg + otium",
			Collocations: library.Strings{"negotiate a deal", "negotiate terms"},
			Sentences: library.Sentences{
				{Text: "We negotiate daily.", Translation: "我们每天谈判。"},
				{Text: "They negotiated a truce."},
			},
		},
		{Word: "apple", Meaning: "n. 苹果"},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteDeck(&buf, "", deck))

	output := buf.String()
	assert.Contains(t, output, "# Luna Words\n\n2025-01-15\n")
	assert.Contains(t, output, "## 商务\n")
	assert.Contains(t, output, "### negotiate /nɪˈɡoʊ.ʃi.eɪt/\n\nv. 谈判\n")
	assert.Contains(t, output, "- Mnemonic: 你go上谈判桌")
	assert.Contains(t, output, "- Roots: neg + otium")
	assert.Contains(t, output, "- Collocations: negotiate a deal, negotiate terms")
	assert.Contains(t, output, "1. We negotiate daily. (我们每天谈判。)")
	assert.Contains(t, output, "2. They negotiated a truce.\n")
	assert.Contains(t, output, "## Uncategorized\n")
	assert.Contains(t, output, "### apple\n")
}

func TestWriteDeck_FilesystemTemplate(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "deck.md.go.tmpl")
	content := `{{ range .Categories }}{{ .Name }}:{{ range .Cards }} {{ .Word }}{{ end }};{{ end }}`
	require.NoError(t, os.WriteFile(templatePath, []byte(content), 0644))

	deck := NewDeckTemplate("", time.Time{}, []library.WordCard{
		{Word: "apple", Category: "fruit"},
		{Word: "pear", Category: "fruit"},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteDeck(&buf, templatePath, deck))
	assert.Equal(t, "fruit: apple pear;", buf.String())
}
