package filestore

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// signedURLTTL is how long a delivery URL stays valid, in seconds.
const signedURLTTL = 600

// Supabase mirrors objects into a Supabase Storage bucket and hands out
// short-lived signed URLs for delivery.
type Supabase struct {
	client *storage.Client
	bucket string
}

func NewSupabase(projectURL, serviceRoleKey, bucket string) *Supabase {
	baseURL := strings.TrimSuffix(projectURL, "/")
	return &Supabase{
		client: storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil),
		bucket: bucket,
	}
}

func (s *Supabase) Put(key string, data []byte, contentType string) error {
	upsert := true
	opts := storage.FileOptions{Upsert: &upsert}
	if contentType != "" {
		opts.ContentType = &contentType
	}
	if _, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), opts); err != nil {
		return fmt.Errorf("upload %s to bucket %s: %w", key, s.bucket, err)
	}
	return nil
}

func (s *Supabase) URLFor(key string) (string, bool) {
	res, err := s.client.CreateSignedUrl(s.bucket, key, signedURLTTL)
	if err != nil {
		log.Printf("⚠️ Could not sign URL for %s: %v", key, err)
		return "", false
	}
	return res.SignedURL, true
}
