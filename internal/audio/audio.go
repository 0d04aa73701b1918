package audio

// Lister enumerates capture devices so a value for the record device
// option can be picked.
type Lister interface {
	ListDevices() ([]AudioDevice, error)
	Close() error
}

// AudioDevice represents an audio input device
type AudioDevice struct {
	ID       string
	Name     string
	Host     string
	Channels int
	Default  bool
}
