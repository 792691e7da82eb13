package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/256dpi/qlog"
)

var wg sync.WaitGroup

var send int64
var recv int64
var rejected int64
var diffs []float64
var mutex sync.Mutex

var gates = []qlog.Gate{
	qlog.GateIdentity,
	qlog.GateHadamard,
	qlog.GatePauliX,
	qlog.GateS,
	qlog.GateSdg,
}

func producer(recorder *qlog.Recorder, qubits int, done <-chan struct{}) {
	for {
		// pick application
		gate := gates[rand.Intn(len(gates))]
		qubit := rand.Intn(qubits)

		// record application
		start := time.Now()
		recorder.Record([]int{qubit}, qlog.ApplicationSingle, gate, func(err error) {
			// calculate diff
			diff := float64(time.Since(start)) / float64(time.Millisecond)

			// increment and save diff
			mutex.Lock()
			recv++
			if err != nil {
				rejected++
			}
			diffs = append(diffs, diff)
			mutex.Unlock()
		})

		// increment
		mutex.Lock()
		send++
		mutex.Unlock()

		// limit rate
		select {
		case <-time.After(5 * time.Microsecond):
		case <-done:
			wg.Done()
			return
		}
	}
}

func printer(archive *qlog.Archive, done <-chan struct{}) {
	// create ticker
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		// await signal
		select {
		case <-ticker.C:
		case <-done:
			wg.Done()
			return
		}

		// get data
		mutex.Lock()
		r := recv
		s := send
		x := rejected
		d := diffs
		recv = 0
		send = 0
		rejected = 0
		diffs = nil
		mutex.Unlock()

		// get snapshots
		list, err := archive.List()
		if err != nil {
			panic(err)
		}

		// get stats
		min, _ := stats.Min(d)
		max, _ := stats.Max(d)
		mean, _ := stats.Mean(d)
		p90, _ := stats.Percentile(d, 90)
		p99, _ := stats.Percentile(d, 99)

		// print rate
		fmt.Printf("send: %d app/s, ", s)
		fmt.Printf("recv: %d app/s, ", r)
		fmt.Printf("rejected: %d, ", x)
		fmt.Printf("min: %.2fms, ", min)
		fmt.Printf("mean: %.2fms, ", mean)
		fmt.Printf("p90: %.2fms, ", p90)
		fmt.Printf("p99: %.2fms, ", p99)
		fmt.Printf("max: %.2fms, ", max)
		fmt.Printf("snapshots: %d\n", len(list))
	}
}

func cleaner(archive *qlog.Archive, retention int, done <-chan struct{}) {
	for {
		// sleep some time
		select {
		case <-time.After(100 * time.Millisecond):
		case <-done:
			wg.Done()
			return
		}

		// trim snapshots
		_, err := archive.Trim(retention)
		if err != nil {
			panic(err)
		}
	}
}

func main() {
	// prepare config
	config := &qlog.Config{
		Pipeline: qlog.PipelineConfig{
			Passes: []string{"remove-identity-gates", "cancel-inverse-pairs"},
		},
		Recorder: qlog.RecorderConfig{
			Qubits:   8,
			Capacity: 5000,
			Backlog:  100,
		},
	}

	// load config if provided
	if len(os.Args) > 1 {
		var err error
		config, err = qlog.LoadConfig(os.Args[1])
		if err != nil {
			panic(err)
		}

		// check qubits
		if config.Recorder.Qubits <= 0 {
			fmt.Fprintf(os.Stderr, "%s: recorder.qubits must be set\n", os.Args[1])
			os.Exit(1)
		}
	}

	// create logger
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// get dir
	if config.Archive.Directory == "" {
		config.Archive.Directory, err = filepath.Abs("./data")
		if err != nil {
			panic(err)
		}

		// remove dir
		err = os.RemoveAll(config.Archive.Directory)
		if err != nil {
			panic(err)
		}
	}

	// open archive
	config.Archive.Logger = logger.Named("archive")
	archive, err := qlog.OpenArchive(config.Archive)
	if err != nil {
		panic(err)
	}

	// build pipeline
	metrics := qlog.NewMetrics()
	registry := prometheus.NewRegistry()
	err = metrics.Register(registry)
	if err != nil {
		panic(err)
	}
	config.Pipeline.Logger = logger.Named("pipeline")
	config.Pipeline.Metrics = metrics
	pipeline, err := qlog.BuildPipeline(config.Pipeline)
	if err != nil {
		panic(err)
	}

	// create recorder
	config.Recorder.Pipeline = pipeline
	config.Recorder.Archive = archive
	config.Recorder.Logger = logger.Named("recorder")
	recorder, err := qlog.NewRecorder(config.Recorder)
	if err != nil {
		panic(err)
	}

	// create control channel
	done := make(chan struct{})

	// run routines
	wg.Add(3)
	go producer(recorder, config.Recorder.Qubits, done)
	go cleaner(archive, 10, done)
	go printer(archive, done)

	// prepare exit
	exit := make(chan os.Signal, 1)
	signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)
	<-exit

	// close control channel
	close(done)
	wg.Wait()

	// close recorder
	recorder.Close()

	// gather metrics
	families, err := registry.Gather()
	if err != nil {
		panic(err)
	}

	// print removed entries
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				fmt.Printf("%s{%s=%s}: %.0f\n", family.GetName(), label.GetName(), label.GetValue(), metric.GetCounter().GetValue())
			}
		}
	}

	// close archive
	err = archive.Close()
	if err != nil {
		panic(err)
	}
}
