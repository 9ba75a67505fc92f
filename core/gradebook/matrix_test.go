package gradebook_test

import (
	"context"
	"errors"
	"testing"

	"github.com/frankspastic/psia-gradebook/core/gradebook"
	"github.com/frankspastic/psia-gradebook/storage/database/dummy"
)

func setup(t *testing.T) (*gradebook.Service, gradebook.Repository) {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	repo := dummydb.NewGradebookRepository(db)
	return gradebook.NewService(repo), repo
}

func createClass(t *testing.T, repo gradebook.Repository, name string) gradebook.Class {
	t.Helper()
	cls, err := repo.CreateClass(context.Background(), gradebook.Class{Name: name})
	if err != nil {
		t.Fatalf("createClass() failed: %v", err)
	}
	return cls
}

func createStudent(t *testing.T, repo gradebook.Repository, classID int, first, last string) gradebook.Student {
	t.Helper()
	st, err := repo.CreateStudent(context.Background(), gradebook.Student{
		ClassID:   classID,
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return st
}

func createAssignment(t *testing.T, repo gradebook.Repository, classID int, label, date string) gradebook.Assignment {
	t.Helper()
	a, err := repo.CreateAssignment(context.Background(), gradebook.Assignment{
		ClassID: classID,
		Label:   label,
		Date:    date,
	})
	if err != nil {
		t.Fatalf("createAssignment() failed: %v", err)
	}
	return a
}

func createGrade(t *testing.T, repo gradebook.Repository, studentID, assignmentID int, value string) gradebook.Grade {
	t.Helper()
	g, err := repo.CreateGrade(context.Background(), gradebook.Grade{
		StudentID:    studentID,
		AssignmentID: assignmentID,
		Grade:        value,
	})
	if err != nil {
		t.Fatalf("createGrade() failed: %v", err)
	}
	return g
}

func TestService_LoadMatrix(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	cls := createClass(t, repo, "Math 5")
	other := createClass(t, repo, "Science 5")
	ana := createStudent(t, repo, cls.ID, "Ana", "Cruz")
	ben := createStudent(t, repo, cls.ID, "Ben", "Okoye")
	outsider := createStudent(t, repo, other.ID, "Cleo", "Dube")

	quiz := createAssignment(t, repo, cls.ID, "Quiz 1", "2026-01-12")
	hw := createAssignment(t, repo, cls.ID, "Homework 1", "2026-01-19")
	otherQuiz := createAssignment(t, repo, other.ID, "Quiz 1", "2026-01-12")

	createGrade(t, repo, ana.ID, quiz.ID, "A")
	createGrade(t, repo, ana.ID, hw.ID, "B+")
	createGrade(t, repo, ben.ID, quiz.ID, "C")
	createGrade(t, repo, outsider.ID, otherQuiz.ID, "A-")

	m, err := svc.LoadMatrix(ctx, cls.ID)
	if err != nil {
		t.Fatalf("LoadMatrix() failed: %v", err)
	}

	if len(m) != 3 {
		t.Errorf("LoadMatrix() returned %d cells, want 3", len(m))
	}
	if got := m.Lookup(ana.ID, quiz.ID); got != "A" {
		t.Errorf("Lookup(ana, quiz) = %q, want %q", got, "A")
	}
	if got := m.Lookup(ana.ID, hw.ID); got != "B+" {
		t.Errorf("Lookup(ana, hw) = %q, want %q", got, "B+")
	}
	if got := m.Lookup(ben.ID, hw.ID); got != "" {
		t.Errorf("Lookup(ben, hw) = %q, want empty", got)
	}
	if got := m.Lookup(outsider.ID, otherQuiz.ID); got != "" {
		t.Errorf("other class grade leaked into matrix: %q", got)
	}
}

func TestService_CommitCell(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	cls := createClass(t, repo, "Math 5")
	ana := createStudent(t, repo, cls.ID, "Ana", "Cruz")
	quiz := createAssignment(t, repo, cls.ID, "Quiz 1", "2026-01-12")

	m := gradebook.Matrix{}

	t.Run("create on first edit", func(t *testing.T) {
		if err := svc.CommitCell(ctx, m, ana.ID, quiz.ID, "  B  "); err != nil {
			t.Fatalf("CommitCell() failed: %v", err)
		}
		if got := m.Lookup(ana.ID, quiz.ID); got != "B" {
			t.Errorf("Lookup() = %q, want %q (trimmed)", got, "B")
		}
		if _, err := repo.GetGrade(ctx, ana.ID, quiz.ID); err != nil {
			t.Errorf("grade not persisted: %v", err)
		}
	})

	t.Run("update keeps a single row per pair", func(t *testing.T) {
		if err := svc.CommitCell(ctx, m, ana.ID, quiz.ID, "A-"); err != nil {
			t.Fatalf("CommitCell() failed: %v", err)
		}
		if got := m.Lookup(ana.ID, quiz.ID); got != "A-" {
			t.Errorf("Lookup() = %q, want %q", got, "A-")
		}
		grades, err := repo.QueryGradesByStudent(ctx, ana.ID)
		if err != nil {
			t.Fatalf("QueryGradesByStudent() failed: %v", err)
		}
		if len(grades) != 1 {
			t.Errorf("got %d grade rows for the pair, want 1", len(grades))
		}
	})

	t.Run("update resets notes", func(t *testing.T) {
		g, err := repo.GetGrade(ctx, ana.ID, quiz.ID)
		if err != nil {
			t.Fatalf("GetGrade() failed: %v", err)
		}
		notes := "late submission"
		if err := repo.UpdateGrade(ctx, g.ID, gradebook.UpdateGrade{Notes: &notes}); err != nil {
			t.Fatalf("UpdateGrade() failed: %v", err)
		}

		if err := svc.CommitCell(ctx, m, ana.ID, quiz.ID, "A"); err != nil {
			t.Fatalf("CommitCell() failed: %v", err)
		}
		g, err = repo.GetGrade(ctx, ana.ID, quiz.ID)
		if err != nil {
			t.Fatalf("GetGrade() failed: %v", err)
		}
		if g.Notes != "" {
			t.Errorf("notes = %q, want empty after cell edit", g.Notes)
		}
	})

	t.Run("blank clears the cell", func(t *testing.T) {
		if err := svc.CommitCell(ctx, m, ana.ID, quiz.ID, "   "); err != nil {
			t.Fatalf("CommitCell() failed: %v", err)
		}
		if got := m.Lookup(ana.ID, quiz.ID); got != "" {
			t.Errorf("Lookup() = %q, want empty", got)
		}
		if _, err := repo.GetGrade(ctx, ana.ID, quiz.ID); err != gradebook.ErrGradeNotFound {
			t.Errorf("GetGrade() error = %v, want ErrGradeNotFound", err)
		}
	})

	t.Run("blank on empty cell is a no-op", func(t *testing.T) {
		if err := svc.CommitCell(ctx, m, ana.ID, quiz.ID, ""); err != nil {
			t.Fatalf("CommitCell() failed: %v", err)
		}
		if len(m) != 0 {
			t.Errorf("matrix has %d cells, want 0", len(m))
		}
	})
}

type failingRepo struct {
	gradebook.Repository
	err error
}

func (r failingRepo) UpdateGrade(ctx context.Context, id int, ug gradebook.UpdateGrade) error {
	return r.err
}

func TestService_CommitCell_storeFailureLeavesMatrix(t *testing.T) {
	_, repo := setup(t)
	ctx := context.Background()

	cls := createClass(t, repo, "Math 5")
	ana := createStudent(t, repo, cls.ID, "Ana", "Cruz")
	quiz := createAssignment(t, repo, cls.ID, "Quiz 1", "2026-01-12")
	g := createGrade(t, repo, ana.ID, quiz.ID, "B")

	errBoom := errors.New("boom")
	svc := gradebook.NewService(failingRepo{Repository: repo, err: errBoom})

	m := gradebook.Matrix{
		gradebook.GradeKey{StudentID: ana.ID, AssignmentID: quiz.ID}: g,
	}
	if err := svc.CommitCell(ctx, m, ana.ID, quiz.ID, "A"); err != errBoom {
		t.Fatalf("CommitCell() error = %v, want %v", err, errBoom)
	}
	if got := m.Lookup(ana.ID, quiz.ID); got != "B" {
		t.Errorf("Lookup() = %q, want %q (matrix must be untouched on store failure)", got, "B")
	}
}

func TestRepository_CreateGrade_duplicatePair(t *testing.T) {
	_, repo := setup(t)
	ctx := context.Background()

	cls := createClass(t, repo, "Math 5")
	ana := createStudent(t, repo, cls.ID, "Ana", "Cruz")
	quiz := createAssignment(t, repo, cls.ID, "Quiz 1", "2026-01-12")
	createGrade(t, repo, ana.ID, quiz.ID, "B")

	_, err := repo.CreateGrade(ctx, gradebook.Grade{StudentID: ana.ID, AssignmentID: quiz.ID, Grade: "A"})
	if err != gradebook.ErrGradeExists {
		t.Errorf("CreateGrade() error = %v, want ErrGradeExists", err)
	}
}
