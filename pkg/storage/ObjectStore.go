package storage

import (
	"io"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

/*
ObjectStorer is the storage the photograph pipeline writes originals and
derivatives to.
*/
type ObjectStorer interface {
	Put(key string, body io.Reader) error
	Get(key string) (io.ReadCloser, error)
	Delete(keys ...string) error
	List(prefix string) ([]string, error)
	URL(key string) (string, error)
}
