package shield

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		in      string
		want    Label
		wantErr bool
	}{
		{"spam", Spam, false},
		{" SPAM ", Spam, false},
		{"ham", Ham, false},
		{"1", Spam, false},
		{"0", Ham, false},
		{"1.0", Spam, false},
		{"0.0", Ham, false},
		{"2", Ham, true},
		{"maybe", Ham, true},
		{"", Ham, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lbl, err := ParseLabel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, lbl)
		})
	}
}

func TestReadSamples(t *testing.T) {
	t.Run("text_type column", func(t *testing.T) {
		data := "text,text_type\n\"Win, now\",spam\nhello,ham\nbad row,unknown\n"
		res, err := ReadSamples(strings.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, []Sample{{Text: "Win, now", Label: Spam}, {Text: "hello", Label: Ham}}, res)
	})

	t.Run("label column with bom and extra columns", func(t *testing.T) {
		data := "\ufeffid,Text,label\n1,free money,1\n2,see you,0\n3\n"
		res, err := ReadSamples(strings.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, []Sample{{Text: "free money", Label: Spam}, {Text: "see you", Label: Ham}}, res)
	})

	t.Run("missing columns", func(t *testing.T) {
		_, err := ReadSamples(strings.NewReader("message,class\nhi,ham\n"))
		require.Error(t, err)
	})

	t.Run("no valid rows", func(t *testing.T) {
		_, err := ReadSamples(strings.NewReader("text,label\nhi,what\n"))
		require.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ReadSamples(strings.NewReader(""))
		require.Error(t, err)
	})
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(CorpusFile(dir, "sms"), []byte("text,text_type\nwin,spam\nhi,ham\n"), 0o600))
	require.NoError(t, os.WriteFile(CorpusFile(dir, "email"), []byte("garbage\n"), 0o600))

	sets, err := DirSource{Dir: dir}.ExampleSets(context.Background())
	require.Error(t, err)
	var dle *DataLoadError
	require.ErrorAs(t, err, &dle)
	assert.Equal(t, "email", dle.Platform)

	require.Len(t, sets, 1)
	assert.Equal(t, "sms", sets[0].Platform)
	assert.Len(t, sets[0].Samples, 2)

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := DirSource{Dir: dir}.ExampleSets(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("missing dir", func(t *testing.T) {
		sets, err := DirSource{Dir: filepath.Join(dir, "nope")}.ExampleSets(context.Background())
		require.NoError(t, err)
		assert.Empty(t, sets)
	})
}

func TestWriteSampleCorpus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(CorpusFile(dir, "sms"), []byte("text,label\nmine,ham\n"), 0o600))

	created, err := WriteSampleCorpus(dir)
	require.NoError(t, err)
	assert.Len(t, created, 3, "sms file exists and kept")

	sets, err := DirSource{Dir: dir}.ExampleSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 4)
	for _, set := range sets {
		if set.Platform == "sms" {
			assert.Equal(t, []Sample{{Text: "mine", Label: Ham}}, set.Samples)
			continue
		}
		assert.Equal(t, sampleCorpus[set.Platform], set.Samples)
	}

	created, err = WriteSampleCorpus(dir)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestMultiSource(t *testing.T) {
	failing := sourceFunc(func(context.Context) ([]ExampleSet, error) {
		return []ExampleSet{{Platform: "sms", Samples: []Sample{{Text: "c", Label: Ham}}}},
			&DataLoadError{Platform: "email", Err: errors.New("broken")}
	})
	m := MultiSource{
		StaticSource{{Platform: "sms", Samples: []Sample{{Text: "a", Label: Spam}}}},
		nil,
		StaticSource{{Platform: "telegram", Samples: []Sample{{Text: "b", Label: Ham}}}},
		failing,
	}
	sets, err := m.ExampleSets(context.Background())
	require.Error(t, err)
	var dle *DataLoadError
	require.ErrorAs(t, err, &dle)
	require.Len(t, sets, 2)
	assert.Equal(t, "sms", sets[0].Platform)
	assert.Equal(t, []Sample{{Text: "a", Label: Spam}, {Text: "c", Label: Ham}}, sets[0].Samples)
	assert.Equal(t, "telegram", sets[1].Platform)
}

func TestCorpusLoader_Load(t *testing.T) {
	t.Run("single set is not subsampled", func(t *testing.T) {
		l := CorpusLoader{Source: StaticSource{makeSet("sms", 8, 8)}}
		res, err := l.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, res, 16)
		for _, e := range res {
			assert.Equal(t, "sms", e.Platform)
		}
	})

	t.Run("several sets subsampled per class", func(t *testing.T) {
		l := CorpusLoader{Source: StaticSource{makeSet("sms", 8, 8), makeSet("email", 4, 12)}}
		res, err := l.Load(context.Background())
		require.NoError(t, err)
		counts := map[string]map[Label]int{}
		for _, e := range res {
			if counts[e.Platform] == nil {
				counts[e.Platform] = map[Label]int{}
			}
			counts[e.Platform][e.Label]++
		}
		assert.Equal(t, map[Label]int{Spam: 2, Ham: 2}, counts["sms"])
		assert.Equal(t, map[Label]int{Spam: 1, Ham: 3}, counts["email"])
	})

	t.Run("subsampling is reproducible", func(t *testing.T) {
		l := CorpusLoader{Source: StaticSource{makeSet("sms", 20, 20), makeSet("email", 20, 20)}}
		res1, err := l.Load(context.Background())
		require.NoError(t, err)
		res2, err := l.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, res1, res2)

		other := CorpusLoader{Source: l.Source, Seed: 7}
		res3, err := other.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, res3, len(res1))
	})

	t.Run("single class set repaired", func(t *testing.T) {
		l := CorpusLoader{Source: StaticSource{makeSet("telegram", 4, 0)}}
		res, err := l.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, res, 7)
		hams := 0
		for _, e := range res {
			if e.Label == Ham {
				hams++
				assert.Equal(t, "telegram", e.Platform)
			}
		}
		assert.Equal(t, 3, hams)
	})

	t.Run("every set keeps both labels", func(t *testing.T) {
		l := CorpusLoader{Source: StaticSource{makeSet("sms", 1, 0), makeSet("email", 0, 1), makeSet("instagram", 30, 2)}}
		res, err := l.Load(context.Background())
		require.NoError(t, err)
		labels := map[string]map[Label]bool{}
		for _, e := range res {
			if labels[e.Platform] == nil {
				labels[e.Platform] = map[Label]bool{}
			}
			labels[e.Platform][e.Label] = true
		}
		for platform, l := range labels {
			assert.True(t, l[Spam] && l[Ham], platform)
		}
		assert.Len(t, labels, 3)
	})

	t.Run("empty corpus", func(t *testing.T) {
		l := CorpusLoader{Source: StaticSource{{Platform: "sms"}}}
		_, err := l.Load(context.Background())
		require.ErrorIs(t, err, ErrEmptyCorpus)

		l = CorpusLoader{}
		_, err = l.Load(context.Background())
		require.ErrorIs(t, err, ErrEmptyCorpus)
	})

	t.Run("synthetic set", func(t *testing.T) {
		l := CorpusLoader{Synthetic: true}
		res, err := l.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, res, 6)
		for _, e := range res {
			assert.Equal(t, SyntheticPlatform, e.Platform)
		}
	})

	t.Run("broken sets skipped", func(t *testing.T) {
		src := sourceFunc(func(context.Context) ([]ExampleSet, error) {
			return []ExampleSet{makeSet("sms", 2, 2)}, &DataLoadError{Platform: "email", Err: errors.New("bad")}
		})
		res, err := (&CorpusLoader{Source: src}).Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, res, 4)
	})
}

func TestMaterialize(t *testing.T) {
	examples := []Example{
		{Text: "Win a FREE prize http://x.com", Platform: "sms", Label: Spam},
		{Text: "see you tomorrow", Platform: "email", Label: Ham},
	}
	rows, labels := Materialize(examples, &Extractor{})
	require.Len(t, rows, 2)
	assert.Equal(t, []Label{Spam, Ham}, labels)
	assert.True(t, rows[0].HasURL)
	assert.Equal(t, "sms", rows[0].Platform)
	assert.Equal(t, "see you tomorrow", rows[1].CleanedText)
}

type sourceFunc func(ctx context.Context) ([]ExampleSet, error)

func (f sourceFunc) ExampleSets(ctx context.Context) ([]ExampleSet, error) { return f(ctx) }

func makeSet(platform string, spam, ham int) ExampleSet {
	res := ExampleSet{Platform: platform}
	for i := 0; i < spam; i++ {
		res.Samples = append(res.Samples, Sample{Text: fmt.Sprintf("%s spam %d", platform, i), Label: Spam})
	}
	for i := 0; i < ham; i++ {
		res.Samples = append(res.Samples, Sample{Text: fmt.Sprintf("%s ham %d", platform, i), Label: Ham})
	}
	return res
}
