package storagepath

import (
	"fmt"
	"strings"
)

type Generator struct {
	Host   string
	Bucket string
}

func (g Generator) PublicURL(key string) string {
	return fmt.Sprintf("https://%s/%s/%s", g.Host, g.Bucket, key)
}

func StemKey(fileBase string, stemName string, extension string) string {
	return fmt.Sprintf("stems/%s/%s.%s", fileBase, stemName, extension)
}

// HostFromEndpoint drops the scheme, "https://acct.r2.cloudflarestorage.com" becomes
// "acct.r2.cloudflarestorage.com".
func HostFromEndpoint(endpoint string) string {
	chunks := strings.Split(endpoint, "//")
	return strings.TrimSuffix(chunks[len(chunks)-1], "/")
}
