package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

type portAudioLister struct{}

// New initialises PortAudio for device enumeration
func New() (Lister, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	return &portAudioLister{}, nil
}

func (p *portAudioLister) ListDevices() ([]AudioDevice, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	defaultDevice, _ := portaudio.DefaultInputDevice()
	return inputDevices(devices, defaultDevice), nil
}

// inputDevices keeps the devices that can capture, flagging the default one.
func inputDevices(devices []*portaudio.DeviceInfo, defaultDevice *portaudio.DeviceInfo) []AudioDevice {
	result := make([]AudioDevice, 0, len(devices))
	for _, d := range devices {
		if d.MaxInputChannels < 1 {
			continue
		}
		dev := AudioDevice{
			ID:       d.Name,
			Name:     d.Name,
			Channels: d.MaxInputChannels,
			Default:  d == defaultDevice,
		}
		if d.HostApi != nil {
			dev.Host = d.HostApi.Name
		}
		result = append(result, dev)
	}
	return result
}

func (p *portAudioLister) Close() error {
	return portaudio.Terminate()
}
