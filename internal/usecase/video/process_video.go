package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/streamhive/videos-ms-go/internal/api_context"
	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/logger"
	"github.com/streamhive/videos-ms-go/internal/model"
	"github.com/streamhive/videos-ms-go/internal/port"
)

// Config carries the filesystem and bucket layout the pipeline writes to.
type Config struct {
	TempDir          string
	VideosBucket     string
	ThumbnailsBucket string
}

type processorSrv struct {
	repo   port.VideoRepository
	strg   port.Storage
	prober port.Prober
	trans  port.Transcoder
	prog   port.ProgressStore
	cfg    Config
}

func NewProcessor(repo port.VideoRepository, strg port.Storage, prober port.Prober, trans port.Transcoder, prog port.ProgressStore, cfg Config) port.VideoProcessor {
	return &processorSrv{repo, strg, prober, trans, prog, cfg}
}

// ProcessVideo runs the whole pipeline for one delivered job: download,
// probe, thumbnail, one encode+upload per quality, publish. Deliveries are
// at-least-once, so every run starts from a fresh temp area and rewrites
// whatever a previous run may have produced.
func (s *processorSrv) ProcessVideo(ctx context.Context, in port.ProcessVideoInput) (*port.ProcessingResult, error) {
	ctx = api_context.WithVideoID(ctx, in.VideoID)
	logger.Info(ctx, "starting processing pipeline", "source_url", in.SourceURL)

	workDir := filepath.Join(s.cfg.TempDir, in.VideoID.String())
	if err := os.RemoveAll(workDir); err != nil {
		return nil, fmt.Errorf("clearing temp dir %q: %w", workDir, err)
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating temp dir %q: %w", workDir, err)
	}
	// cleanup runs whichever step fails, and on cancellation
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			logger.Warnf(ctx, "could not clean up temp dir %q: %v", workDir, err)
		}
	}()

	var uploaded []string
	res, err := s.run(ctx, in, workDir, &uploaded)
	if err != nil {
		logger.Errorf(ctx, "processing failed for video #%s: %v", in.VideoID, err)
		s.markFailed(ctx, in.VideoID, err)
		s.deleteArtifacts(ctx, uploaded)
		return nil, err
	}

	logger.Info(ctx, "video published", "thumbnail_url", res.ThumbnailURL)
	return res, nil
}

func (s *processorSrv) run(ctx context.Context, in port.ProcessVideoInput, workDir string, uploaded *[]string) (*port.ProcessingResult, error) {
	// rewriting "processing" on a redelivered job is harmless
	if err := s.repo.UpdateStatus(ctx, in.VideoID, model.VideoStatusProcessing, port.UpdateStatusFields{}); err != nil {
		return nil, fmt.Errorf("marking video as processing: %w", err)
	}

	srcPath := filepath.Join(workDir, "input.mp4")
	s.prog.Set(ctx, in.VideoID, "download", 0)
	if err := s.strg.DownloadFromURL(ctx, in.SourceURL, srcPath); err != nil {
		return nil, fmt.Errorf("downloading source: %w", err)
	}
	s.prog.Set(ctx, in.VideoID, "download", 100)

	md, err := s.prober.Probe(ctx, srcPath)
	if err != nil {
		return nil, fmt.Errorf("probing metadata: %w", err)
	}
	logger.Debug(ctx, "source probed",
		"duration", md.DurationSeconds, "width", md.Width, "height", md.Height, "format", md.Format)

	thumbPath, err := s.trans.Thumbnail(ctx, srcPath, workDir, md.DurationSeconds)
	if err != nil {
		return nil, fmt.Errorf("generating thumbnail: %w", err)
	}
	thumbURL, err := s.uploadLocalFile(ctx, s.cfg.ThumbnailsBucket, in.VideoID.String()+"_thumbnail.jpg", thumbPath, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("uploading thumbnail: %w", err)
	}
	*uploaded = append(*uploaded, thumbURL)

	// qualities run sequentially; one failed encode fails the whole job so
	// consumers never see a partially published ladder
	urls := make(model.VideoURLs, len(Qualities))
	for _, q := range Qualities {
		stage := "transcode:" + q.Name
		outPath, err := s.trans.Transcode(ctx, srcPath, workDir, q, md.DurationSeconds, func(percent float64) {
			logger.Debugf(ctx, "encoding %s: %.1f%% done", q.Name, percent)
			s.prog.Set(ctx, in.VideoID, stage, percent)
		})
		if err != nil {
			return nil, fmt.Errorf("encoding %s rendition: %w", q.Name, err)
		}

		key := fmt.Sprintf("%s/%s.mp4", in.VideoID, q.Name)
		url, err := s.uploadLocalFile(ctx, s.cfg.VideosBucket, key, outPath, "video/mp4")
		if err != nil {
			return nil, fmt.Errorf("uploading %s rendition: %w", q.Name, err)
		}
		*uploaded = append(*uploaded, url)
		urls[q.Name] = url
	}

	duration := md.DurationSeconds
	if err := s.repo.UpdateStatus(ctx, in.VideoID, model.VideoStatusPublished, port.UpdateStatusFields{
		ThumbnailURL:    &thumbURL,
		VideoURLs:       urls,
		Metadata:        &md,
		DurationSeconds: &duration,
	}); err != nil {
		return nil, fmt.Errorf("publishing video: %w", err)
	}

	return &port.ProcessingResult{
		VideoID:      in.VideoID,
		Metadata:     md,
		ThumbnailURL: thumbURL,
		VideoURLs:    urls,
		Status:       "completed",
	}, nil
}

func (s *processorSrv) uploadLocalFile(ctx context.Context, bucket, fileKey, path, contentType string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stating %q: %w", path, err)
	}

	return s.strg.Upload(ctx, bucket, fileKey, f, info.Size(), contentType)
}

// deleteArtifacts removes the objects a failed run already uploaded, so a
// half-built ladder never lingers in the buckets. Best effort, on a fresh
// context for the same reason as markFailed.
func (s *processorSrv) deleteArtifacts(ctx context.Context, urls []string) {
	dctx := context.WithoutCancel(ctx)
	for _, u := range urls {
		if err := s.strg.Delete(dctx, u); err != nil {
			logger.Warnf(ctx, "could not delete stale artifact %q: %v", u, err)
		}
	}
}

// markFailed attaches the pipeline error to the record. It deliberately uses
// a fresh context: the run's context may already be cancelled.
func (s *processorSrv) markFailed(ctx context.Context, id db.UUID, cause error) {
	msg := cause.Error()
	if err := s.repo.UpdateStatus(context.WithoutCancel(ctx), id, model.VideoStatusFailed, port.UpdateStatusFields{
		FailureMessage: &msg,
	}); err != nil {
		logger.Errorf(ctx, "could not mark video #%s as failed: %v", id, err)
	}
}
