package shield

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-pkgz/fileutils"
	"github.com/hashicorp/go-multierror"
)

//go:generate moq --out mocks/corpus_source.go --pkg mocks --with-resets --skip-ensure . CorpusSource

// Label is a classification label
type Label int

// enum of labels, values match binary labels of corpus files
const (
	Ham  Label = 0
	Spam Label = 1
)

func (l Label) String() string {
	if l == Spam {
		return "spam"
	}
	return "ham"
}

// MarshalText implements encoding.TextMarshaler
func (l Label) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Label) UnmarshalText(data []byte) error {
	v, err := ParseLabel(string(data))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ParseLabel converts "spam"/"ham" or binary "1"/"0" label to Label
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spam":
		return Spam, nil
	case "ham":
		return Ham, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Ham, fmt.Errorf("unknown label %q", s)
	}
	switch v {
	case 1:
		return Spam, nil
	case 0:
		return Ham, nil
	}
	return Ham, fmt.Errorf("unknown numeric label %q", s)
}

// platforms with built-in sample sets and corpus files
var corpusPlatforms = []string{"sms", "email", "instagram", "telegram"}

// SyntheticPlatform is a platform name of the synthetic emergency set
const SyntheticPlatform = "synthetic"

// Defaults for CorpusLoader
const (
	DefaultSubsampleFraction = 0.25
	DefaultSeed              = 42
)

// Sample is a labeled text
type Sample struct {
	Text  string
	Label Label
}

// ExampleSet is a named, per-platform set of labeled samples
type ExampleSet struct {
	Platform  string
	Samples   []Sample
	Synthetic bool // synthetic sets are never subsampled
}

// Example is a single row of the merged training table
type Example struct {
	Text     string `json:"text"`
	Platform string `json:"platform"`
	Label    Label  `json:"label"`
}

// CorpusSource provides example sets. Sets which failed to load are reported in error as
// *DataLoadError (possibly several, combined), while all good sets are still returned.
type CorpusSource interface {
	ExampleSets(ctx context.Context) ([]ExampleSet, error)
}

// CorpusLoader assembles a merged, class-balanced training table from example sets
type CorpusLoader struct {
	Source            CorpusSource // source of example sets, can be nil
	Synthetic         bool         // use synthetic set if no example sets available
	SubsampleFraction float64      // share of each set kept when more than one set loaded, DefaultSubsampleFraction if 0
	Seed              uint64       // subsampling seed, DefaultSeed if 0
}

// Load returns merged examples. Corrupt or missing sets are logged and skipped,
// ErrEmptyCorpus returned if nothing usable left.
func (c *CorpusLoader) Load(ctx context.Context) ([]Example, error) {
	var sets []ExampleSet
	if c.Source != nil {
		loaded, err := c.Source.ExampleSets(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("corpus loading interrupted: %w", ctx.Err())
			}
			log.Printf("[WARN] some example sets skipped, %v", err)
		}
		sets = loaded
	}

	usable := make([]ExampleSet, 0, len(sets))
	for _, set := range sets {
		if len(set.Samples) == 0 {
			log.Printf("[WARN] example set %q is empty, skipped", set.Platform)
			continue
		}
		usable = append(usable, repairSingleClass(set))
	}

	if len(usable) == 0 {
		if !c.Synthetic {
			return nil, ErrEmptyCorpus
		}
		log.Printf("[INFO] no training data found, using synthetic examples")
		usable = append(usable, syntheticSet())
	}

	res := []Example{}
	for _, set := range usable {
		samples := set.Samples
		if len(usable) > 1 && !set.Synthetic {
			samples = subsample(samples, c.fraction(), c.seed(), set.Platform)
		}
		for _, s := range samples {
			res = append(res, Example{Text: s.Text, Platform: set.Platform, Label: s.Label})
		}
	}
	if len(res) == 0 {
		return nil, ErrEmptyCorpus
	}

	spam := 0
	for _, e := range res {
		if e.Label == Spam {
			spam++
		}
	}
	log.Printf("[INFO] loaded %d training examples from %d sets, spam:%d, ham:%d", len(res), len(usable), spam, len(res)-spam)
	return res, nil
}

func (c *CorpusLoader) fraction() float64 {
	if c.SubsampleFraction <= 0 || c.SubsampleFraction > 1 {
		return DefaultSubsampleFraction
	}
	return c.SubsampleFraction
}

func (c *CorpusLoader) seed() uint64 {
	if c.Seed == 0 {
		return DefaultSeed
	}
	return c.Seed
}

// Materialize extracts features for every example and returns them with labels in the same order
func Materialize(examples []Example, extractor *Extractor) ([]Features, []Label) {
	rows := make([]Features, 0, len(examples))
	labels := make([]Label, 0, len(examples))
	for _, e := range examples {
		rows = append(rows, extractor.Extract(e.Text, e.Platform))
		labels = append(labels, e.Label)
	}
	return rows, labels
}

// repairSingleClass adds three canonical examples of the missing class to a single-class set
func repairSingleClass(set ExampleSet) ExampleSet {
	var spam, ham int
	for _, s := range set.Samples {
		if s.Label == Spam {
			spam++
			continue
		}
		ham++
	}
	if spam > 0 && ham > 0 {
		return set
	}

	log.Printf("[WARN] example set %q has only one class, adding canonical examples", set.Platform)
	extra := canonicalSpam
	if spam > 0 {
		extra = canonicalHam
	}
	samples := make([]Sample, 0, len(set.Samples)+len(extra))
	samples = append(samples, set.Samples...)
	samples = append(samples, extra...)
	return ExampleSet{Platform: set.Platform, Samples: samples, Synthetic: set.Synthetic}
}

// subsample keeps a fraction of samples of each class, at least one per class, preserving the original order.
// Selection is deterministic for the given seed and platform.
func subsample(samples []Sample, fraction float64, seed uint64, platform string) []Sample {
	h := fnv.New64a()
	_, _ = h.Write([]byte(platform))
	rnd := rand.New(rand.NewPCG(seed, h.Sum64())) //nolint:gosec // reproducible sampling, not security sensitive

	byLabel := map[Label][]int{}
	for i, s := range samples {
		byLabel[s.Label] = append(byLabel[s.Label], i)
	}

	keep := []int{}
	for _, lbl := range []Label{Ham, Spam} {
		idxs := byLabel[lbl]
		if len(idxs) == 0 {
			continue
		}
		n := max(1, int(math.RoundToEven(fraction*float64(len(idxs)))))
		rnd.Shuffle(len(idxs), func(i, j int) { idxs[i], idxs[j] = idxs[j], idxs[i] })
		keep = append(keep, idxs[:n]...)
	}
	sort.Ints(keep)

	res := make([]Sample, 0, len(keep))
	for _, i := range keep {
		res = append(res, samples[i])
	}
	return res
}

// StaticSource is a CorpusSource with in-memory example sets
type StaticSource []ExampleSet

// ExampleSets returns a copy of the sets
func (s StaticSource) ExampleSets(context.Context) ([]ExampleSet, error) {
	res := make([]ExampleSet, 0, len(s))
	for _, set := range s {
		samples := make([]Sample, len(set.Samples))
		copy(samples, set.Samples)
		res = append(res, ExampleSet{Platform: set.Platform, Samples: samples, Synthetic: set.Synthetic})
	}
	return res, nil
}

// MultiSource combines several sources. Sets of the same platform are merged into one set.
type MultiSource []CorpusSource

// ExampleSets collects sets from all sources, errors of all sources are combined
func (m MultiSource) ExampleSets(ctx context.Context) ([]ExampleSet, error) {
	errs := new(multierror.Error)
	var res []ExampleSet
	index := map[string]int{}
	for _, src := range m {
		if src == nil {
			continue
		}
		sets, err := src.ExampleSets(ctx)
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		for _, set := range sets {
			if i, ok := index[set.Platform]; ok {
				res[i].Samples = append(res[i].Samples, set.Samples...)
				continue
			}
			index[set.Platform] = len(res)
			res = append(res, set)
		}
	}
	return res, errs.ErrorOrNil()
}

// DirSource loads example sets from "<platform>_spam.csv" files in Dir.
// Files must have a header with "text" and "text_type" (or "label") columns.
type DirSource struct {
	Dir       string
	Platforms []string // platforms to load, sms, email, instagram and telegram if empty
}

// ExampleSets loads all available platform files. Missing files are skipped silently,
// unreadable files and files without required columns reported as DataLoadError.
func (d DirSource) ExampleSets(ctx context.Context) ([]ExampleSet, error) {
	platforms := d.Platforms
	if len(platforms) == 0 {
		platforms = corpusPlatforms
	}

	errs := new(multierror.Error)
	res := []ExampleSet{}
	for _, platform := range platforms {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		path := CorpusFile(d.Dir, platform)
		if !fileutils.IsFile(path) {
			log.Printf("[DEBUG] no corpus file for %s, %s", platform, path)
			continue
		}
		samples, err := readCorpusFile(path)
		if err != nil {
			errs = multierror.Append(errs, &DataLoadError{Platform: platform, Err: err})
			continue
		}
		log.Printf("[DEBUG] loaded %d examples from %s", len(samples), path)
		res = append(res, ExampleSet{Platform: platform, Samples: samples})
	}
	return res, errs.ErrorOrNil()
}

// CorpusFile returns the corpus file name for the platform
func CorpusFile(dir, platform string) string {
	return filepath.Join(dir, platform+"_spam.csv")
}

func readCorpusFile(path string) ([]Sample, error) {
	fh, err := os.Open(path) //nolint:gosec // path built from configured data dir
	if err != nil {
		return nil, fmt.Errorf("can't open %s: %w", path, err)
	}
	defer fh.Close()
	return ReadSamples(fh)
}

// ReadSamples reads csv with a header containing "text" and "text_type" or "label" columns.
// Rows with unknown labels are skipped.
func ReadSamples(r io.Reader) ([]Sample, error) {
	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1
	header, err := rd.Read()
	if err != nil {
		return nil, fmt.Errorf("can't read header: %w", err)
	}

	textCol, labelCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "text":
			textCol = i
		case "text_type", "label":
			if labelCol < 0 {
				labelCol = i
			}
		}
	}
	if textCol < 0 || labelCol < 0 {
		return nil, fmt.Errorf("missing text or text_type column in header %v", header)
	}

	res := []Sample{}
	line, skipped := 1, 0
	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("can't read line %d: %w", line, err)
		}
		if textCol >= len(rec) || labelCol >= len(rec) {
			skipped++
			continue
		}
		lbl, err := ParseLabel(rec[labelCol])
		if err != nil {
			skipped++
			continue
		}
		res = append(res, Sample{Text: rec[textCol], Label: lbl})
	}
	if skipped > 0 {
		log.Printf("[WARN] skipped %d rows with invalid label or missing columns", skipped)
	}
	if len(res) == 0 {
		return nil, errors.New("no valid rows")
	}
	return res, nil
}

// WriteSampleCorpus creates built-in per-platform corpus files in dir, existing files are kept.
// Returns the list of created files.
func WriteSampleCorpus(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("can't make data dir %s: %w", dir, err)
	}
	created := []string{}
	for _, platform := range corpusPlatforms {
		path := CorpusFile(dir, platform)
		if fileutils.IsFile(path) {
			continue
		}
		if err := writeSamples(path, sampleCorpus[platform]); err != nil {
			return created, err
		}
		log.Printf("[INFO] created sample data file %s", path)
		created = append(created, path)
	}
	return created, nil
}

func writeSamples(path string, samples []Sample) (err error) {
	fh, err := os.Create(path) //nolint:gosec // path built from configured data dir
	if err != nil {
		return fmt.Errorf("can't create %s: %w", path, err)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("can't close %s: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(fh)
	if err := w.Write([]string{"text", "text_type"}); err != nil {
		return fmt.Errorf("can't write header to %s: %w", path, err)
	}
	for _, s := range samples {
		if err := w.Write([]string{s.Text, s.Label.String()}); err != nil {
			return fmt.Errorf("can't write sample to %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}
