package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker <export [file] | import <file> | clear | backup | list-templates>")
	}

	var err error
	switch os.Args[1] {
	case "export":
		err = RunExport(os.Args[2:])
	case "import":
		err = RunImport(os.Args[2:])
	case "clear":
		err = RunClear(os.Args[2:])
	case "backup":
		err = RunBackup(os.Args[2:])
	case "list-templates":
		err = RunListTemplates(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}
