// Command wakeup pings the health endpoint of a hibernated deployment
// until it answers. Free hosting tiers suspend idle containers; run this
// before demos or scheduled jobs so the first real request doesn't time
// out.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/utils"
)

func main() {
	url := flag.String("url", "", "health endpoint to ping, e.g. https://app.example.com/health")
	attempts := flag.Int("attempts", 6, "maximum ping attempts")
	wait := flag.Duration("wait", 2*time.Second, "initial wait between attempts")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	flag.Parse()

	if *url == "" {
		log.Fatal("usage: wakeup -url <health endpoint>")
	}

	res, err := utils.WakeUp(context.Background(), utils.WakeUpConfig{
		URL:         *url,
		MaxAttempts: *attempts,
		InitialWait: *wait,
		Timeout:     *timeout,
	})
	if err != nil {
		log.Fatalf("service still asleep after %d attempts (%s): %v", res.Attempts, res.Elapsed.Round(time.Millisecond), err)
	}

	fmt.Printf("service awake after %d attempt(s) in %s\n", res.Attempts, res.Elapsed.Round(time.Millisecond))
}
