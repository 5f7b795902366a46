package main

import (
	"fmt"

	"github.com/Narendra3579/ssvteachersapp/core"
	"github.com/Narendra3579/ssvteachersapp/core/classroom"
)

// seed adds demo classes and students, skipping if the roster already has
// data so reruns do not duplicate anyone.
func (cli *commandLine) seed() error {
	students := core.ReadKey(cli.acc, classroom.StoreKeyStudents, []classroom.Student{})
	if len(students) > 0 {
		fmt.Fprintf(cli.out, "found %d existing students; skipping seed\n", len(students))
		return nil
	}

	students = []classroom.Student{
		{ID: 1, Name: "Aarav Sharma", Class: "5A"},
		{ID: 2, Name: "Diya Patel", Class: "5A"},
		{ID: 3, Name: "Ishaan Verma", Class: "5A"},
		{ID: 4, Name: "Meera Nair", Class: "5B"},
		{ID: 5, Name: "Rohan Gupta", Class: "5B"},
		{ID: 6, Name: "Sara Khan", Class: "6A"},
	}
	if err := cli.acc.Write(classroom.StoreKeyStudents, students); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "seeded %d students across 3 classes\n", len(students))
	return nil
}
