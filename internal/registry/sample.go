package registry

import "github.com/alvinwan/goquiz/internal/quiz"

// Sample is a built-in generator-backed source, kept so a bare install
// has something to serve. Prompts show a description and the choices
// are tool names.
func Sample() *Source {
	terms := []quiz.Term{
		quiz.NewTerm("Git", "Distributed version control, created for Linux kernel work"),
		quiz.NewTerm("GitHub", "Hosting service with pull requests and a social layer"),
		quiz.NewTerm("Bitbucket", "Hosting service from Atlassian, pairs with Jira"),
		quiz.NewTerm("GitLab", "Self-hostable platform with built-in CI pipelines"),
		quiz.NewTerm("Gitorious", "Early open-source hosting site, later absorbed by a rival"),
		quiz.NewTerm("Mercurial", "Distributed version control with a Python lineage"),
	}
	vocab, err := quiz.NewVocabulary("version-control", terms)
	if err != nil {
		// static list, both sides always set
		panic(err)
	}
	return &Source{
		Key:        "sample",
		Name:       "Version Control Sample",
		Vocabulary: vocab,
		Settings:   quiz.Settings{Side: quiz.SideBack, Distractors: 4},
		Count:      5,
	}
}
