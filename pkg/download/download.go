// Package download defines the capability contract a download client
// (transmission over its RPC protocol, SABnzbd over its HTTP API) must
// satisfy so DownloadLifecycle can poll progress and AutoSearch/RSSGrabber
// can dispatch grabs without caring which backend is configured.
package download

import "context"

// AddRequest is everything a client needs to start a new job.
type AddRequest struct {
	URL      string
	SavePath string
	Category string
	// Protocol distinguishes a torrent magnet/file add from an NZB add;
	// a client implementation only honors the protocol it understands and
	// otherwise returns an error, since a download_client_config row is
	// provisioned for one protocol at a time.
	Protocol string
}

const (
	ProtocolTorrent = "torrent"
	ProtocolUsenet  = "usenet"
)

// AddResult reports the outcome of Add. A repeated Add of a URL already
// present in the client's queue must report OK with the existing ClientID
// rather than erroring or duplicating the job.
type AddResult struct {
	OK       bool
	ClientID string
	Message  string
}

// Job is one entry in a download client's queue, normalized across
// backends so DownloadLifecycle can poll generically.
type Job struct {
	ClientID  string
	Name      string
	Category  string
	Progress  float64 // 0-100
	SizeBytes int64
	Done      bool
	FilePaths []string
}

// Client is the capability a configured download client exposes.
type Client interface {
	Add(ctx context.Context, req AddRequest) (AddResult, error)
	List(ctx context.Context, category string) ([]Job, error)
	Remove(ctx context.Context, clientID string, deleteFiles bool) error
}
