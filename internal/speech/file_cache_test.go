package speech_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_speech "github.com/at-ishikawa/lunaword/internal/mocks/speech"
	"github.com/at-ishikawa/lunaword/internal/speech"
)

func TestFileCache_Synthesize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		fileName string
	}{
		{
			name:     "single word",
			text:     "Apple",
			fileName: "apple.mp3",
		},
		{
			name:     "phrase",
			text:     "look up",
			fileName: "look_up.mp3",
		},
		{
			name:     "non-ASCII text is hashed",
			text:     "谈判",
			fileName: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "audio")
			ctrl := gomock.NewController(t)
			synthesizer := mock_speech.NewMockSynthesizer(ctrl)
			synthesizer.EXPECT().Synthesize(gomock.Any(), tt.text).Return([]byte("mp3:"+tt.text), nil).Times(1)

			cache := speech.NewFileCache(dir, synthesizer)
			for i := 0; i < 2; i++ {
				got, err := cache.Synthesize(context.Background(), tt.text)
				require.NoError(t, err)
				assert.Equal(t, []byte("mp3:"+tt.text), got)
			}

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			if tt.fileName != "" {
				assert.Equal(t, tt.fileName, entries[0].Name())
			} else {
				assert.Len(t, entries[0].Name(), 64+len(".mp3"))
			}
		})
	}
}

func TestFileCache_Synthesize_Error(t *testing.T) {
	dir := t.TempDir()
	ctrl := gomock.NewController(t)
	synthesizer := mock_speech.NewMockSynthesizer(ctrl)
	synthesizer.EXPECT().Synthesize(gomock.Any(), "apple").Return(nil, errors.New("quota"))

	_, err := speech.NewFileCache(dir, synthesizer).Synthesize(context.Background(), "apple")
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
