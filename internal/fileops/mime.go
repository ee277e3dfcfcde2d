package fileops

// supportedTypes is the static MIME-shorthand table the validator and
// converter consult. It never changes at runtime — the spec calls this out
// explicitly as the only state the operations library carries besides a
// storage directory path.
var supportedTypes = map[string]bool{
	"pdf":  true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

var mimeByType = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

func isSupportedType(t string) bool { return supportedTypes[t] }

func mimeType(t string) string {
	if m, ok := mimeByType[t]; ok {
		return m
	}
	return "application/octet-stream"
}
