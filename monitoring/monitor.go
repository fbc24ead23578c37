// Package monitoring allows a running sweep to be observed from a browser.
//
// The monitor is advisory only. It serves progress, results, and process
// resource usage as JSON; sweep correctness never depends on it.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/rs/xid"
	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/memlat/experiment"
)

// Monitor turns a sweep into a small web server so its progress can be
// observed while it runs.
type Monitor struct {
	portNumber int

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
	sweepBar         *ProgressBar

	resultsLock sync.Mutex
	results     []experiment.Result
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterSweep creates a progress bar that tracks the sweep stage by
// stage.
func (m *Monitor) RegisterSweep(sweep *experiment.StrideSweep) {
	m.sweepBar = m.CreateProgressBar(
		"sweep "+sweep.ID(), uint64(sweep.NumStages()))
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, totalStages uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:          xid.New().String(),
		Name:        name,
		StartTime:   time.Now(),
		TotalStages: totalStages,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// Report implements experiment.Reporter. It publishes the accumulated
// results and advances the sweep's progress bar.
func (m *Monitor) Report(results []experiment.Result) {
	m.resultsLock.Lock()
	m.results = append([]experiment.Result{}, results...)
	m.resultsLock.Unlock()

	if m.sweepBar != nil {
		m.sweepBar.CompleteStage(results[len(results)-1].Stride)
	}
}

// StartServer starts the monitoring server and opens it in a browser. It
// returns the address the server listens on.
func (m *Monitor) StartServer() string {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", m.portNumber))
	if err != nil {
		panic(err)
	}

	port := listener.Addr().(*net.TCPAddr).Port
	url := fmt.Sprintf("http://localhost:%d/api/progress", port)
	fmt.Fprintf(os.Stderr, "Monitoring sweep at %s\n", url)

	go func() {
		serveErr := http.Serve(listener, m.router())
		if serveErr != nil {
			panic(serveErr)
		}
	}()

	_ = browser.OpenURL(url)

	return listener.Addr().String()
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/results", m.listResults)
	r.HandleFunc("/api/resources", m.listResources)
	r.PathPrefix("/debug/").Handler(http.DefaultServeMux)

	return r
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	writeJSON(w, m.progressBars)
}

func (m *Monitor) listResults(w http.ResponseWriter, _ *http.Request) {
	m.resultsLock.Lock()
	defer m.resultsLock.Unlock()

	writeJSON(w, m.results)
}

type resourceUsage struct {
	CPUPercent float64 `json:"cpu_percent"`
	RSSBytes   uint64  `json:"rss_bytes"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	usage := resourceUsage{}
	if cpu, cpuErr := proc.CPUPercent(); cpuErr == nil {
		usage.CPUPercent = cpu
	}
	if memInfo, memErr := proc.MemoryInfo(); memErr == nil {
		usage.RSSBytes = memInfo.RSS
	}

	writeJSON(w, usage)
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(value)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
