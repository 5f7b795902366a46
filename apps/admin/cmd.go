package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/Narendra3579/ssvteachersapp/core"
	"github.com/Narendra3579/ssvteachersapp/core/classroom"
)

var errHelp = errors.New("help provided")

// commandLine manages the student roster. The teacher app only reads
// students; this tool is the one place they are created and removed. Writes
// go through the shared store so running instances pick them up live.
type commandLine struct {
	acc *core.Accessor
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  addstudent -name NAME -class CLASS [-id ID] - add a student to a class")
	fmt.Fprintln(cli.out, "  removestudent -id ID                        - remove a student")
	fmt.Fprintln(cli.out, "  liststudents                                - print the roster")
	fmt.Fprintln(cli.out, "  seed                                        - add demo classes and students")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addName := addCmd.String("name", "", "The student's name.")
	addClass := addCmd.String("class", "", "The class the student belongs to.")
	addID := addCmd.Int("id", 0, "Optional explicit student ID.")

	removeCmd := flag.NewFlagSet("removestudent", flag.ExitOnError)
	removeID := removeCmd.Int("id", 0, "The ID of the student to remove.")

	switch args[1] {
	case "addstudent":
		if err := addCmd.Parse(args[2:]); err != nil {
			return err
		}
		name := core.CleanString(*addName)
		class := core.CleanString(*addClass)
		if name == "" || class == "" {
			addCmd.Usage()
			return errHelp
		}
		return cli.addStudent(name, class, *addID)
	case "removestudent":
		if err := removeCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *removeID == 0 {
			removeCmd.Usage()
			return errHelp
		}
		return cli.removeStudent(*removeID)
	case "liststudents":
		return cli.listStudents()
	case "seed":
		return cli.seed()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) addStudent(name, class string, id int) error {
	students := core.ReadKey(cli.acc, classroom.StoreKeyStudents, []classroom.Student{})
	if id == 0 {
		for _, stu := range students {
			if stu.ID >= id {
				id = stu.ID + 1
			}
		}
		if id == 0 {
			id = 1
		}
	} else {
		for _, stu := range students {
			if stu.ID == id {
				return fmt.Errorf("a student with id %d already exists", id)
			}
		}
	}

	students = append(students, classroom.Student{ID: id, Name: name, Class: class})
	if err := cli.acc.Write(classroom.StoreKeyStudents, students); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "added student %d: %s (%s)\n", id, name, class)
	return nil
}

func (cli *commandLine) removeStudent(id int) error {
	students := core.ReadKey(cli.acc, classroom.StoreKeyStudents, []classroom.Student{})
	kept := make([]classroom.Student, 0, len(students))
	for _, stu := range students {
		if stu.ID != id {
			kept = append(kept, stu)
		}
	}
	if len(kept) == len(students) {
		return fmt.Errorf("no student with id %d", id)
	}
	if err := cli.acc.Write(classroom.StoreKeyStudents, kept); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "removed student %d\n", id)
	return nil
}

func (cli *commandLine) listStudents() error {
	students := core.ReadKey(cli.acc, classroom.StoreKeyStudents, []classroom.Student{})
	if len(students) == 0 {
		fmt.Fprintln(cli.out, "no students")
		return nil
	}
	for _, stu := range students {
		fmt.Fprintf(cli.out, "%d\t%s\t%s\n", stu.ID, stu.Name, stu.Class)
	}
	return nil
}
