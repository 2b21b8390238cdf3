package pagination

import (
	"encoding/base64"
	"encoding/json"
)

// Pagination is filled by the HTTP layer from query parameters; the
// service clamps PageSize itself, so the struct carries no binding tags.
type Pagination struct {
	PageToken string
	PageSize  int
}

type Cursor struct {
	ID        string `json:"id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type PageInfo struct {
	NextPageToken string `json:"next_page_token"`
	HasMore       bool   `json:"has_more"`
}

func EncodeCursor(data Cursor) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// BuildCursorPageInfo derives the page info for a result set fetched
// with limit pageSize+1. The extra row signals another page; its
// predecessor supplies the next cursor.
func BuildCursorPageInfo[T any](items []*T, pageSize int32, token func(*T) string) *PageInfo {
	info := &PageInfo{}
	if int32(len(items)) <= pageSize {
		return info
	}
	last := items[pageSize-1]
	info.HasMore = true
	info.NextPageToken = token(last)
	return info
}

func DecodeCursor(data string) (*Cursor, error) {
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}

	var cursor Cursor
	if err := json.Unmarshal(b, &cursor); err != nil {
		return nil, err
	}

	return &cursor, nil
}
