package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"weather-display/api"
	"weather-display/lookup"
	"weather-display/models"
)

// MockProvider simulates upstream latency and counts calls for both endpoints
type MockProvider struct {
	calls   atomic.Int32
	latency time.Duration
}

func (m *MockProvider) wait(ctx context.Context) error {
	m.calls.Add(1)
	select {
	case <-time.After(m.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MockProvider) GetWeather(ctx context.Context, location string) (models.WeatherData, error) {
	if err := m.wait(ctx); err != nil {
		return models.WeatherData{}, err
	}
	return models.WeatherData{
		Provider:             m.Name(),
		City:                 location,
		Country:              "XX",
		Temperature:          22.5,
		WindSpeed:            5.5,
		ConditionMain:        "Clear",
		ConditionIcon:        "01d",
		ConditionDescription: "mocked weather",
		Timestamp:            time.Now(),
	}, nil
}

func (m *MockProvider) FetchForecast(ctx context.Context, location string) (models.ForecastData, error) {
	if err := m.wait(ctx); err != nil {
		return models.ForecastData{}, err
	}
	now := time.Now()
	data := models.ForecastData{Provider: m.Name(), Location: location, Updated: now}
	for i := 0; i < 40; i++ {
		data.Samples = append(data.Samples, models.ForecastSample{
			Timestamp:     now.Add(time.Duration(3*i) * time.Hour),
			Temperature:   20 + float64(i%8),
			ConditionMain: "Clear",
			ConditionIcon: "01d",
		})
	}
	return data, nil
}

func (m *MockProvider) Name() string {
	return "MockProvider"
}

func main() {
	// Parse command-line flags
	requestsPerSecond := flag.Float64("rps", 1.0, "Inbound rate limit in requests per second")
	burstSize := flag.Int("burst", 3, "Maximum burst size")
	totalRequests := flag.Int("requests", 10, "Total number of requests to make")
	concurrentRequests := flag.Int("concurrent", 5, "Number of concurrent requests")
	flag.Parse()

	// Serve the API in-process against a mock provider with 200ms response time
	mock := &MockProvider{latency: 200 * time.Millisecond}
	service := lookup.NewService(mock, mock)
	server := api.NewServer(service, 0, api.WithRateLimit(*requestsPerSecond, *burstSize))
	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	fmt.Printf("Testing inbound throttling with:\n")
	fmt.Printf("- Rate limit: %.2f requests/second\n", *requestsPerSecond)
	fmt.Printf("- Burst size: %d\n", *burstSize)
	fmt.Printf("- Total requests: %d\n", *totalRequests)
	fmt.Printf("- Concurrent workers: %d\n", *concurrentRequests)
	fmt.Println("Starting test...")

	startTime := time.Now()

	var (
		wg        sync.WaitGroup
		accepted  atomic.Int32
		throttled atomic.Int32
	)

	// Launch concurrent goroutines
	for i := 0; i < *concurrentRequests; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			// Calculate how many requests this worker should make
			requestsPerWorker := *totalRequests / *concurrentRequests
			if workerID < *totalRequests%*concurrentRequests {
				requestsPerWorker++
			}

			for j := 0; j < requestsPerWorker; j++ {
				url := fmt.Sprintf("%s/api/weather/TestCity-%d-%d", ts.URL, workerID, j)
				before := time.Now()
				resp, err := http.Get(url)
				if err != nil {
					log.Printf("Worker %d - Request %d failed: %v", workerID, j, err)
					continue
				}
				resp.Body.Close()

				switch resp.StatusCode {
				case http.StatusOK:
					accepted.Add(1)
				case http.StatusTooManyRequests:
					throttled.Add(1)
				}
				log.Printf("Worker %d - Request %d returned %d in %v", workerID, j, resp.StatusCode, time.Since(before))

				// Small sleep to prevent tight loop
				time.Sleep(10 * time.Millisecond)
			}
		}(i)
	}

	wg.Wait()

	totalTime := time.Since(startTime)
	fmt.Println("\nTest completed!")
	fmt.Printf("Total time: %.2f seconds\n", totalTime.Seconds())
	fmt.Printf("Accepted: %d, throttled: %d\n", accepted.Load(), throttled.Load())
	fmt.Printf("Upstream calls: %d (two per accepted search)\n", mock.calls.Load())

	// At most the burst plus what refills during the run can get through
	maxAccepted := float64(*burstSize) + *requestsPerSecond*totalTime.Seconds()
	if float64(accepted.Load()) > maxAccepted+1 {
		fmt.Println("\nWARNING: more requests accepted than the configured rate allows.")
		fmt.Println("Throttling may not be working as expected.")
	} else {
		fmt.Println("\nThrottling appears to be working correctly.")
	}
}
