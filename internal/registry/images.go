package registry

import (
	"context"
	"encoding/json"
)

// cachedImage is the serialized form of one portrait in the cache: the
// bytes plus the content type the origin reported.
type cachedImage struct {
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// GetImage returns the portrait bytes and content type for an external
// identifier, fetching from the image origin and caching with the image
// TTL on a miss. Image entries have a longer TTL than rosters; portraits
// change rarely.
func (s *Service) GetImage(ctx context.Context, externalID string) ([]byte, string, error) {
	if blob, ok := s.store.Get(imageKey(externalID)); ok {
		var img cachedImage
		if err := json.Unmarshal(blob, &img); err == nil {
			return img.Data, img.ContentType, nil
		}
		s.store.Delete(imageKey(externalID))
	}

	data, contentType, err := s.images.Image(ctx, externalID)
	if err != nil {
		return nil, "", err
	}

	if blob, err := json.Marshal(cachedImage{ContentType: contentType, Data: data}); err == nil {
		s.store.Set(imageKey(externalID), blob, s.opts.ImageTTL)
	}
	return data, contentType, nil
}

// ImageCached reports whether a portrait is currently cached, without
// fetching. Used by the warmup scheduler to skip already-warm entries.
func (s *Service) ImageCached(externalID string) bool {
	_, ok := s.store.Get(imageKey(externalID))
	return ok
}
