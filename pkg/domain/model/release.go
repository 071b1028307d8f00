package model

// MediaTypeZip is the content type of uploaded artifact archives
const MediaTypeZip = "application/zip"

// AssetUpload is the binary content attached to a release
type AssetUpload struct {
	Name      string
	MediaType string
	Content   []byte
}

// Size returns the exact byte length sent as Content-Length
func (a *AssetUpload) Size() int64 {
	return int64(len(a.Content))
}

// PublishResult describes a published release
type PublishResult struct {
	Repo       RepositoryRef
	PRNumber   int
	Version    string
	TagName    string
	ReleaseID  int64
	ReleaseURL string
	AssetName  string
	AssetSize  int64
}
