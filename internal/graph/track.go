package graph

import (
	"context"

	"github.com/goliatone/go-contentgraph/internal/logging"
	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

const (
	TrackTypeMain = "main"
	TrackTypeSide = "side"
)

func (b *Builder) buildTrack(ctx context.Context, record *interfaces.SourceRecord) error {
	logger := logging.WithSourceContext(b.logger, record.RelativePath, interfaces.NodeTypeTrack)

	data := stripReserved(record.Data)
	slug := record.Name
	trackID := b.ids.SynthesizeID("tracks/" + slug)

	fields := omitKeys(data)
	fields["slug"] = slug

	var chapters []*interfaces.ContentNode
	switch trackType, _ := data["type"].(string); trackType {
	case TrackTypeMain:
		chapterIDs := []string{}
		numVideos := 0
		for _, entry := range listValue(data["chapters"]) {
			chapter := b.chapterNode(slug, trackID, entry)
			chapters = append(chapters, chapter)
			chapterIDs = append(chapterIDs, chapter.ID)
			numVideos += len(chapter.Fields["lessons"].([]string))
		}
		fields["numVideos"] = numVideos
		fields["chapters"] = chapterIDs
	case TrackTypeSide:
		videos := listValue(data["videos"])
		videoIDs := make([]string, 0, len(videos))
		for _, video := range videos {
			// side track entries are already namespaced, e.g. "challenges/starfield"
			videoIDs = append(videoIDs, b.ids.SynthesizeID(keyString(video)))
		}
		fields["numVideos"] = len(videos)
		fields["videos"] = videoIDs
	default:
		logger.Warn("graph.track.unknown_type", "type", data["type"])
		return nil
	}

	track := b.newNode(trackID, record.ID, interfaces.NodeTypeTrack, data, fields)
	if err := b.register(ctx, logger, track); err != nil {
		return err
	}
	for _, chapter := range chapters {
		if err := b.register(ctx, logger, chapter); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) chapterNode(trackSlug, trackID string, entry any) *interfaces.ContentNode {
	chapter, _ := entry.(map[string]any)
	data := omitKeys(chapter, "lessons")

	lessons := listValue(chapter["lessons"])
	lessonIDs := make([]string, 0, len(lessons))
	for _, lesson := range lessons {
		lessonIDs = append(lessonIDs, b.ids.SynthesizeID("lessons/"+keyString(lesson)))
	}

	fields := omitKeys(data)
	fields["track"] = trackID
	fields["lessons"] = lessonIDs

	id := b.ids.SynthesizeID(trackSlug + "/" + keyString(chapter["title"]))
	return b.newNode(id, trackID, interfaces.NodeTypeChapter, data, fields)
}
