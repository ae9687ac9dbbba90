package main

import (
	"log"
	"runtime"
)

// GLFW and OpenGL calls must come from the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	log.SetFlags(log.Ltime)

	if err := NewApp(parseArgs()).Run(); err != nil {
		log.Fatal(err)
	}
}
