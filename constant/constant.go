package constant

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}

type StorageBackend string

const (
	StorageBackendMemory   StorageBackend = "memory"
	StorageBackendSqlite   StorageBackend = "sqlite"
	StorageBackendPostgres StorageBackend = "postgres"
)

func (s StorageBackend) String() string {
	return string(s)
}

type BlobBackend string

const (
	BlobBackendDisk  BlobBackend = "disk"
	BlobBackendMinio BlobBackend = "minio"
)

func (b BlobBackend) String() string {
	return string(b)
}

// MaxUploadBytes caps a single audio upload at 10 MB.
const MaxUploadBytes = 10 << 20

// UploadsURLPrefix is the public path prefix under which stored audio files
// are served back to clients.
const UploadsURLPrefix = "/uploads"
