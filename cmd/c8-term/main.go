package main

import "log"

func main() {
	log.SetFlags(0)

	if err := NewApp(parseArgs()).Run(); err != nil {
		log.Fatal(err)
	}
}
