package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the weather API")
	city := flag.String("city", "London", "City to look up")
	flag.Parse()

	fmt.Println("Weather API Client Example")
	fmt.Println("=========================")

	// Check the server is up
	healthResp, err := http.Get(*baseURL + "/api/health")
	if err != nil {
		fmt.Printf("Error reaching server: %v\n", err)
		os.Exit(1)
	}
	healthResp.Body.Close()
	fmt.Printf("Health check: %s\n\n", healthResp.Status)

	fmt.Printf("Fetching weather data for %s...\n", *city)
	weatherURL := fmt.Sprintf("%s/api/weather/%s", *baseURL, url.PathEscape(*city))
	weatherResp, err := http.Get(weatherURL)
	if err != nil {
		fmt.Printf("Error fetching weather: %v\n", err)
		os.Exit(1)
	}
	defer weatherResp.Body.Close()

	weatherBody, err := io.ReadAll(weatherResp.Body)
	if err != nil {
		fmt.Printf("Error reading response: %v\n", err)
		os.Exit(1)
	}

	// Parse the JSON for pretty printing
	var page map[string]interface{}
	if err := json.Unmarshal(weatherBody, &page); err != nil {
		fmt.Printf("Error parsing response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Request ID: %s\n", weatherResp.Header.Get("X-Request-ID"))
	if weatherResp.StatusCode != http.StatusOK {
		fmt.Printf("%s: %v\n", weatherResp.Status, page["error"])
		os.Exit(1)
	}

	prettyJSON, _ := json.MarshalIndent(page, "", "  ")
	fmt.Printf("\nWeather data for %s:\n%s\n", *city, string(prettyJSON))
	fmt.Printf("\nChart: %s/chart\n", weatherURL)
}
