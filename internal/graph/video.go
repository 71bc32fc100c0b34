package graph

import (
	"context"
	"math"
	"path"
	"strings"

	"github.com/goliatone/go-contentgraph/internal/logging"
	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

const (
	contributionsDir     = "contributions"
	contributionsSegment = "/" + contributionsDir + "/"
)

func (b *Builder) buildVideoLike(ctx context.Context, record *interfaces.SourceRecord, category Category) error {
	if err := b.ready(record); err != nil {
		return err
	}
	logger := logging.WithSourceContext(b.logger, record.RelativePath, string(category))
	if strings.Contains(record.RelativePath, contributionsSegment) {
		return b.buildContribution(ctx, logger, record, category)
	}
	if b.fs == nil {
		return ErrFileSystemRequired
	}

	data := stripReserved(record.Data)
	prefix := category.KeyPrefix()
	slug := record.RelativeDirectory

	contributions, err := b.contributionIDs(record, prefix)
	if err != nil {
		return err
	}

	fields := omitKeys(data)
	fields["slug"] = slug
	fields["contributionsPath"] = slug + "/" + contributionsDir
	fields["timestamps"] = b.timestamps(logger, data["timestamps"])
	fields["codeExamples"] = defaultList(data, "codeExamples")
	fields["groupLinks"] = defaultList(data, "groupLinks")
	fields["canContribute"] = canContribute(data, category)
	fields["contributions"] = contributions

	node := b.newNode(b.ids.SynthesizeID(prefix+"/"+slug), record.ID, string(category), data, fields)
	return b.register(ctx, logger, node)
}

// contributionIDs lists the sibling contributions directory and returns the
// id each contribution file will receive when it is mapped itself.
func (b *Builder) contributionIDs(record *interfaces.SourceRecord, prefix string) ([]string, error) {
	dir := path.Join(record.Dir, contributionsDir)
	exists, err := b.fs.Exists(dir)
	if err != nil {
		return nil, err
	}
	ids := []string{}
	if !exists {
		return ids, nil
	}
	entries, err := b.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		// substring match: "notes.json.bak" counts as a contribution too
		if !strings.Contains(entry, ".json") {
			continue
		}
		key := prefix + "/" + record.RelativeDirectory + contributionsSegment + entry
		ids = append(ids, b.ids.SynthesizeID(key))
	}
	return ids, nil
}

func (b *Builder) buildContribution(ctx context.Context, logger interfaces.Logger, record *interfaces.SourceRecord, category Category) error {
	data := stripReserved(record.Data)
	prefix := category.KeyPrefix()
	owner := strings.TrimSuffix(record.RelativeDirectory, "/"+contributionsDir)

	fields := omitKeys(data)
	fields["name"] = path.Base(record.Dir)
	fields["video"] = b.ids.SynthesizeID(prefix + "/" + owner)

	node := b.newNode(b.ids.SynthesizeID(prefix+"/"+record.RelativePath), record.ID, interfaces.NodeTypeContribution, data, fields)
	return b.register(ctx, logger, node)
}

// timestamps copies every entry and adds its offset in seconds.
func (b *Builder) timestamps(logger interfaces.Logger, value any) []any {
	entries := listValue(value)
	out := make([]any, 0, len(entries))
	for _, entry := range entries {
		ts, _ := entry.(map[string]any)
		copied := omitKeys(ts)
		seconds := math.NaN()
		if raw, ok := ts["time"].(string); ok {
			seconds = TimestampSeconds(raw)
		}
		if math.IsNaN(seconds) {
			logger.Warn("graph.timestamp.not_a_number", "time", ts["time"])
		}
		copied["seconds"] = seconds
		out = append(out, copied)
	}
	return out
}

func defaultList(data map[string]any, key string) any {
	if value, ok := data[key]; ok && value != nil {
		return value
	}
	return []any{}
}

// canContribute keeps an explicit value; otherwise only challenges accept
// contributions.
func canContribute(data map[string]any, category Category) any {
	if value, ok := data["canContribute"]; ok && value != nil {
		return value
	}
	return category == CategoryChallenge
}
