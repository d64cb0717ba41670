// Package sdkgate tracks whether the externally distributed integration SDK
// is mounted next to the service. The flag is probed once at startup and is
// read-only afterwards; the SDK itself is an opaque collaborator that is
// either present or absent, never code this service calls into.
package sdkgate

import (
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type Status struct {
	Mounted  bool      `json:"mounted"`
	Path     string    `json:"path"`
	ProbedAt time.Time `json:"probed_at"`
}

var (
	mu     sync.RWMutex
	status Status
)

// Probe stats the SDK mount point once at startup. SDK_PATH overrides the
// default location.
func Probe() {
	path := os.Getenv("SDK_PATH")
	if path == "" {
		path = "./sdk-dist"
	}

	_, err := os.Stat(path)

	mu.Lock()
	status = Status{
		Mounted:  err == nil,
		Path:     path,
		ProbedAt: time.Now().UTC(),
	}
	mu.Unlock()

	if err != nil {
		log.Warnf("integration SDK not mounted at %s, SDK panels disabled", path)
		return
	}
	log.Infof("integration SDK mounted at %s", path)
}

func Mounted() bool {
	mu.RLock()
	defer mu.RUnlock()
	return status.Mounted
}

func Current() Status {
	mu.RLock()
	defer mu.RUnlock()
	return status
}
