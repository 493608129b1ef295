package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/df07/go-recursive-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	sceneDir := flag.String("scenes", "scenes", "Directory of JSON scene files")
	maxRenders := flag.Int("max-renders", runtime.NumCPU()/2, "Maximum number of concurrent renders")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, *sceneDir, *maxRenders)

	log.Printf("Recursive Raytracer Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
