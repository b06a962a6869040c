package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"artmarket-backend/internal/domain/artworks"
	"artmarket-backend/internal/infra/aiverify"
	"artmarket-backend/internal/infra/filestore"
	"artmarket-backend/internal/store"
)

// ErrNoFile means the request carried no usable image part.
var ErrNoFile = errors.New("no image file supplied")

// Verifier is the authenticity check the pipeline runs on every upload. It
// never fails; a degraded service answers with a fallback Result instead.
type Verifier interface {
	Verify(ctx context.Context, filename string, data []byte) aiverify.Result
}

// Upload is one validated upload request: text already scrubbed, price
// already coerced into minor units by the HTTP layer.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte

	Title       string
	Description string
	PriceCents  int64
	OwnerID     *uint
}

// Pipeline turns an upload into a stored, persisted and verified artwork.
// The disk copy is the durability anchor: its failure aborts the request,
// while a mirror failure only costs the remote copy.
type Pipeline struct {
	store    store.Store
	disk     filestore.Backend
	mirror   filestore.Backend // nil when no remote backend is configured
	verifier Verifier
}

func New(st store.Store, disk, mirror filestore.Backend, verifier Verifier) *Pipeline {
	return &Pipeline{
		store:    st,
		disk:     disk,
		mirror:   mirror,
		verifier: verifier,
	}
}

// Ingest runs the upload through the fixed sequence: save bytes locally,
// persist the artwork, obtain a verification verdict, persist it, then
// mirror the bytes remotely. The returned artwork always carries its
// verification.
func (p *Pipeline) Ingest(ctx context.Context, up Upload) (*artworks.Artwork, error) {
	if len(up.Data) == 0 || up.Filename == "" {
		return nil, ErrNoFile
	}

	contentType := up.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(up.Data).String()
	}

	key := filestore.NewKey(up.Filename)
	if err := p.disk.Put(key, up.Data, contentType); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	art := &artworks.Artwork{
		ID:          uuid.NewString(),
		Title:       up.Title,
		Description: up.Description,
		Filename:    up.Filename,
		StorageKey:  key,
		ContentType: contentType,
		SizeBytes:   int64(len(up.Data)),
		PriceCents:  up.PriceCents,
		OwnerID:     up.OwnerID,
	}
	if err := p.store.CreateArtwork(ctx, art); err != nil {
		return nil, fmt.Errorf("persist artwork: %w", err)
	}

	res := p.verifier.Verify(ctx, up.Filename, up.Data)
	if res.Fallback {
		log.Printf("⚠️ Artwork %s verified with fallback verdict", art.ID)
	}
	ver := &artworks.Verification{
		ArtworkID:    art.ID,
		ModelVersion: res.ModelVersion,
		ScoreHuman:   res.ScoreHuman,
		Verdict:      artworks.Verdict(res.Verdict),
		Explanations: res.Explanations,
	}
	if err := p.store.AttachVerification(ctx, ver); err != nil {
		return nil, fmt.Errorf("persist verification: %w", err)
	}
	art.Verification = ver

	// Best effort: the local copy already guarantees durability.
	if p.mirror != nil {
		if err := p.mirror.Put(key, up.Data, contentType); err != nil {
			log.Printf("⚠️ Remote mirror failed for %s, keeping local copy only: %v", key, err)
		}
	}

	return art, nil
}
