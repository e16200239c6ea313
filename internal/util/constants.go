package util

import "time"

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// RemoteTimeout bounds reconciliation reads against the record store; past it
// the cached copy is served instead. It does not cancel the underlying query.
const RemoteTimeout = 6 * time.Second

// Cache key namespaces, one blob per user: @<domain>_<userId>.
const (
	CacheProfilePrefix  = "@profile_"
	CacheCoursesPrefix  = "@courses_"
	CacheProgressPrefix = "@progress_"
	CacheDirtyPrefix    = "@dirty_"
)

const (
	MimeImage = "image/"
)

var AllowedAvatarExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}
