package library_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/lunaword/internal/database"
	"github.com/at-ishikawa/lunaword/internal/inference"
	"github.com/at-ishikawa/lunaword/internal/library"
	mock_inference "github.com/at-ishikawa/lunaword/internal/mocks/inference"
	mock_library "github.com/at-ishikawa/lunaword/internal/mocks/library"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func negotiationResponse() inference.GenerateWordCardResponse {
	return inference.GenerateWordCardResponse{
		Word:         " Negotiation ",
		Phonetic:     "nɪˌɡəʊʃiˈeɪʃn",
		Meaning:      "n. 谈判；协商",
		Roots:        "negotium 生意",
		Collocations: []string{"enter into negotiation", "under negotiation", "negotiation skills"},
		Mnemonic:     "你go下去谈",
		Category:     " 商务 ",
		Sentences: []inference.Sentence{
			{Text: "The negotiation went well.", Translation: "谈判进展顺利。"},
			{Text: "They are in negotiation with the union.", Translation: "他们正在与工会谈判。"},
			{Text: "After lengthy negotiation, a treaty was signed.", Translation: "经过漫长的谈判，条约签署了。"},
		},
	}
}

func negotiationCard() *library.WordCard {
	return &library.WordCard{
		Word:         "negotiation",
		Phonetic:     "nɪˌɡəʊʃiˈeɪʃn",
		Meaning:      "n. 谈判；协商",
		Category:     "商务",
		Mnemonic:     "你go下去谈",
		Roots:        "negotium 生意",
		Collocations: library.Strings{"enter into negotiation", "under negotiation", "negotiation skills"},
		Sentences: library.Sentences{
			{Text: "The negotiation went well.", Translation: "谈判进展顺利。"},
			{Text: "They are in negotiation with the union.", Translation: "他们正在与工会谈判。"},
			{Text: "After lengthy negotiation, a treaty was signed.", Translation: "经过漫长的谈判，条约签署了。"},
		},
		CreatedAt: fixedNow,
		UpdatedAt: fixedNow,
	}
}

func TestCache_Fetch(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setupMocks func(repo *mock_library.MockRepository, generator *mock_inference.MockClient)
		want       *library.WordCard
		wantReason library.Reason
		wantErrIs  error
	}{
		{
			name:  "complete cached card is returned without generating",
			query: "  Negotiation ",
			setupMocks: func(repo *mock_library.MockRepository, generator *mock_inference.MockClient) {
				repo.EXPECT().FindByWord(gomock.Any(), "negotiation").Return(negotiationCard(), nil)
			},
			want: negotiationCard(),
		},
		{
			name:  "miss generates and upserts under the lower-cased word",
			query: "Negotiation",
			setupMocks: func(repo *mock_library.MockRepository, generator *mock_inference.MockClient) {
				repo.EXPECT().FindByWord(gomock.Any(), "negotiation").Return(nil, nil)
				generator.EXPECT().
					GenerateWordCard(gomock.Any(), inference.GenerateWordCardRequest{Query: "Negotiation", MeaningLanguage: "Chinese"}).
					Return(negotiationResponse(), nil)
				repo.EXPECT().Upsert(gomock.Any(), negotiationCard()).Return(nil)
			},
			want: negotiationCard(),
		},
		{
			name:  "incomplete legacy card is regenerated",
			query: "negotiation",
			setupMocks: func(repo *mock_library.MockRepository, generator *mock_inference.MockClient) {
				legacy := negotiationCard()
				legacy.Roots = ""
				legacy.Collocations = nil
				repo.EXPECT().FindByWord(gomock.Any(), "negotiation").Return(legacy, nil)
				generator.EXPECT().GenerateWordCard(gomock.Any(), gomock.Any()).Return(negotiationResponse(), nil)
				repo.EXPECT().Upsert(gomock.Any(), negotiationCard()).Return(nil)
			},
			want: negotiationCard(),
		},
		{
			name:  "non-ASCII input always goes to the generator",
			query: "谈判",
			setupMocks: func(repo *mock_library.MockRepository, generator *mock_inference.MockClient) {
				generator.EXPECT().
					GenerateWordCard(gomock.Any(), inference.GenerateWordCardRequest{Query: "谈判", MeaningLanguage: "Chinese"}).
					Return(negotiationResponse(), nil)
				repo.EXPECT().Upsert(gomock.Any(), negotiationCard()).Return(nil)
			},
			want: negotiationCard(),
		},
		{
			name:  "failing generator leaves the cache empty",
			query: "negotiation",
			setupMocks: func(repo *mock_library.MockRepository, generator *mock_inference.MockClient) {
				repo.EXPECT().FindByWord(gomock.Any(), "negotiation").Return(nil, nil)
				generator.EXPECT().GenerateWordCard(gomock.Any(), gomock.Any()).
					Return(inference.GenerateWordCardResponse{}, errors.New("connection reset by peer"))
			},
			wantReason: library.ReasonUnavailable,
		},
		{
			name:  "quota exhaustion is distinguishable",
			query: "negotiation",
			setupMocks: func(repo *mock_library.MockRepository, generator *mock_inference.MockClient) {
				repo.EXPECT().FindByWord(gomock.Any(), "negotiation").Return(nil, nil)
				generator.EXPECT().GenerateWordCard(gomock.Any(), gomock.Any()).
					Return(inference.GenerateWordCardResponse{}, inference.ErrInsufficientQuota)
			},
			wantReason: library.ReasonQuotaExhausted,
		},
		{
			name:  "malformed generator output",
			query: "negotiation",
			setupMocks: func(repo *mock_library.MockRepository, generator *mock_inference.MockClient) {
				repo.EXPECT().FindByWord(gomock.Any(), "negotiation").Return(nil, nil)
				generator.EXPECT().GenerateWordCard(gomock.Any(), gomock.Any()).
					Return(inference.GenerateWordCardResponse{}, inference.ErrMalformedResponse)
			},
			wantReason: library.ReasonMalformed,
		},
		{
			name:  "unknown word",
			query: "qwxzv",
			setupMocks: func(repo *mock_library.MockRepository, generator *mock_inference.MockClient) {
				repo.EXPECT().FindByWord(gomock.Any(), "qwxzv").Return(nil, nil)
				generator.EXPECT().GenerateWordCard(gomock.Any(), gomock.Any()).
					Return(inference.GenerateWordCardResponse{}, inference.ErrUnknownWord)
			},
			wantReason: library.ReasonNotFound,
		},
		{
			name:  "generator returns an empty word",
			query: "qwxzv",
			setupMocks: func(repo *mock_library.MockRepository, generator *mock_inference.MockClient) {
				repo.EXPECT().FindByWord(gomock.Any(), "qwxzv").Return(nil, nil)
				generator.EXPECT().GenerateWordCard(gomock.Any(), gomock.Any()).
					Return(inference.GenerateWordCardResponse{Word: "  "}, nil)
			},
			wantReason: library.ReasonNotFound,
		},
		{
			name:  "blank query",
			query: "   ",
			setupMocks: func(repo *mock_library.MockRepository, generator *mock_inference.MockClient) {
			},
			wantReason: library.ReasonNotFound,
		},
		{
			name:  "store failure on lookup propagates",
			query: "negotiation",
			setupMocks: func(repo *mock_library.MockRepository, generator *mock_inference.MockClient) {
				repo.EXPECT().FindByWord(gomock.Any(), "negotiation").
					Return(nil, database.Unavailable(errors.New("connection refused")))
			},
			wantErrIs: database.ErrStoreUnavailable,
		},
		{
			name:  "store failure on upsert propagates",
			query: "negotiation",
			setupMocks: func(repo *mock_library.MockRepository, generator *mock_inference.MockClient) {
				repo.EXPECT().FindByWord(gomock.Any(), "negotiation").Return(nil, nil)
				generator.EXPECT().GenerateWordCard(gomock.Any(), gomock.Any()).Return(negotiationResponse(), nil)
				repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
					Return(database.Unavailable(errors.New("connection refused")))
			},
			wantErrIs: database.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_library.NewMockRepository(ctrl)
			generator := mock_inference.NewMockClient(ctrl)
			tt.setupMocks(repo, generator)

			cache := library.NewCache(repo, generator, library.WithClock(fixedClock))
			got, err := cache.Fetch(context.Background(), tt.query)

			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				_, isGenerationError := library.AsGenerationError(err)
				assert.False(t, isGenerationError)
				assert.Nil(t, got)
				return
			}
			if tt.wantReason != "" {
				genErr, ok := library.AsGenerationError(err)
				require.True(t, ok, "want a GenerationError, got %v", err)
				assert.Equal(t, tt.wantReason, genErr.Reason)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCache_Fetch_IdempotentOnCompleteHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_library.NewMockRepository(ctrl)
	generator := mock_inference.NewMockClient(ctrl)

	repo.EXPECT().FindByWord(gomock.Any(), "negotiation").Return(negotiationCard(), nil).Times(2)
	generator.EXPECT().GenerateWordCard(gomock.Any(), gomock.Any()).Times(0)

	cache := library.NewCache(repo, generator)
	first, err := cache.Fetch(context.Background(), "negotiation")
	require.NoError(t, err)
	second, err := cache.Fetch(context.Background(), "negotiation")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCache_Find(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		setup   func(repo *mock_library.MockRepository)
		want    *library.WordCard
		wantErr error
	}{
		{
			name: "stored card",
			word: " Negotiation ",
			setup: func(repo *mock_library.MockRepository) {
				repo.EXPECT().FindByWord(gomock.Any(), "negotiation").Return(negotiationCard(), nil)
			},
			want: negotiationCard(),
		},
		{
			name: "word not in the library",
			word: "ghost",
			setup: func(repo *mock_library.MockRepository) {
				repo.EXPECT().FindByWord(gomock.Any(), "ghost").Return(nil, nil)
			},
		},
		{
			name:  "blank word",
			word:  "  ",
			setup: func(repo *mock_library.MockRepository) {},
		},
		{
			name: "store unavailable",
			word: "ghost",
			setup: func(repo *mock_library.MockRepository) {
				repo.EXPECT().FindByWord(gomock.Any(), "ghost").Return(nil, database.Unavailable(errors.New("connection refused")))
			},
			wantErr: database.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_library.NewMockRepository(ctrl)
			generator := mock_inference.NewMockClient(ctrl)
			tt.setup(repo)
			generator.EXPECT().GenerateWordCard(gomock.Any(), gomock.Any()).Times(0)

			got, err := library.NewCache(repo, generator).Find(context.Background(), tt.word)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCache_Fetch_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_library.NewMockRepository(ctrl)
	generator := mock_inference.NewMockClient(ctrl)

	repo.EXPECT().FindByWord(gomock.Any(), "negotiation").Return(nil, nil)
	generator.EXPECT().GenerateWordCard(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ inference.GenerateWordCardRequest) (inference.GenerateWordCardResponse, error) {
			<-ctx.Done()
			return inference.GenerateWordCardResponse{}, ctx.Err()
		})

	cache := library.NewCache(repo, generator, library.WithTimeout(10*time.Millisecond))
	got, err := cache.Fetch(context.Background(), "negotiation")
	assert.Nil(t, got)
	genErr, ok := library.AsGenerationError(err)
	require.True(t, ok)
	assert.Equal(t, library.ReasonTimeout, genErr.Reason)
	assert.True(t, genErr.Degraded())
}

func TestCache_Fetch_Deduplication(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_library.NewMockRepository(ctrl)
	generator := mock_inference.NewMockClient(ctrl)

	const callers = 5
	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(callers)

	repo.EXPECT().FindByWord(gomock.Any(), "negotiation").
		DoAndReturn(func(context.Context, string) (*library.WordCard, error) {
			started.Done()
			return nil, nil
		}).Times(callers)
	generator.EXPECT().GenerateWordCard(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, inference.GenerateWordCardRequest) (inference.GenerateWordCardResponse, error) {
			<-release
			return negotiationResponse(), nil
		}).Times(1)
	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	cache := library.NewCache(repo, generator, library.WithClock(fixedClock), library.WithDeduplication(true))

	var wg sync.WaitGroup
	results := make([]*library.WordCard, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			card, err := cache.Fetch(context.Background(), "negotiation")
			assert.NoError(t, err)
			results[i] = card
		}(i)
	}
	started.Wait()
	// Give the callers time to join the in-flight generation.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, card := range results {
		assert.Equal(t, negotiationCard(), card)
	}
}

func TestCache_BatchSuggest(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		exclude    []string
		maxExclude int
		setupMocks func(generator *mock_inference.MockClient)
		want       []string
	}{
		{
			name:    "filters excluded and duplicated words",
			count:   3,
			exclude: []string{"Apple", "banana"},
			setupMocks: func(generator *mock_inference.MockClient) {
				generator.EXPECT().
					SuggestWords(gomock.Any(), inference.SuggestWordsRequest{Topic: "fruit", Count: 3, Exclude: []string{"Apple", "banana"}}).
					Return(inference.SuggestWordsResponse{Words: []string{"apple", "Cherry", "cherry", " ", "grape", "mango"}}, nil)
			},
			want: []string{"cherry", "grape", "mango"},
		},
		{
			name:       "exclusion list is capped",
			count:      2,
			exclude:    []string{"apple", "banana", "cherry"},
			maxExclude: 2,
			setupMocks: func(generator *mock_inference.MockClient) {
				generator.EXPECT().
					SuggestWords(gomock.Any(), inference.SuggestWordsRequest{Topic: "fruit", Count: 2, Exclude: []string{"apple", "banana"}}).
					Return(inference.SuggestWordsResponse{Words: []string{"cherry", "grape", "melon"}}, nil)
			},
			want: []string{"grape", "melon"},
		},
		{
			name:  "generator failure returns an empty list",
			count: 3,
			setupMocks: func(generator *mock_inference.MockClient) {
				generator.EXPECT().SuggestWords(gomock.Any(), gomock.Any()).
					Return(inference.SuggestWordsResponse{}, inference.ErrInsufficientQuota)
			},
			want: []string{},
		},
		{
			name:       "zero count does not call the generator",
			count:      0,
			setupMocks: func(generator *mock_inference.MockClient) {},
			want:       []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			generator := mock_inference.NewMockClient(ctrl)
			tt.setupMocks(generator)

			cache := library.NewCache(mock_library.NewMockRepository(ctrl), generator, library.WithMaxExclude(tt.maxExclude))
			got := cache.BatchSuggest(context.Background(), "fruit", tt.count, tt.exclude)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCache_Expand(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_library.NewMockRepository(ctrl)
	generator := mock_inference.NewMockClient(ctrl)

	repo.EXPECT().FindAll(gomock.Any()).Return([]library.WordCard{{Word: "deal"}}, nil)
	generator.EXPECT().
		SuggestWords(gomock.Any(), inference.SuggestWordsRequest{Topic: "business", Count: 2, Exclude: []string{"deal"}}).
		Return(inference.SuggestWordsResponse{Words: []string{"deal", "negotiation", "contract"}}, nil)

	repo.EXPECT().FindByWord(gomock.Any(), "negotiation").Return(nil, nil)
	generator.EXPECT().GenerateWordCard(gomock.Any(), inference.GenerateWordCardRequest{Query: "negotiation", MeaningLanguage: "Japanese"}).
		Return(negotiationResponse(), nil)
	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	repo.EXPECT().FindByWord(gomock.Any(), "contract").Return(nil, nil)
	generator.EXPECT().GenerateWordCard(gomock.Any(), inference.GenerateWordCardRequest{Query: "contract", MeaningLanguage: "Japanese"}).
		Return(inference.GenerateWordCardResponse{}, inference.ErrInsufficientQuota)

	cache := library.NewCache(repo, generator, library.WithClock(fixedClock), library.WithMeaningLanguage("Japanese"))
	results, err := cache.Expand(context.Background(), "business", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "negotiation", results[0].Word)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "negotiation", results[0].Card.Word)

	assert.Equal(t, "contract", results[1].Word)
	assert.Nil(t, results[1].Card)
	genErr, ok := library.AsGenerationError(results[1].Err)
	require.True(t, ok)
	assert.Equal(t, library.ReasonQuotaExhausted, genErr.Reason)
}

func TestCache_Expand_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_library.NewMockRepository(ctrl)

	repo.EXPECT().FindAll(gomock.Any()).Return(nil, database.Unavailable(errors.New("connection refused")))

	cache := library.NewCache(repo, mock_inference.NewMockClient(ctrl))
	_, err := cache.Expand(context.Background(), "business", 2)
	assert.ErrorIs(t, err, database.ErrStoreUnavailable)
}
