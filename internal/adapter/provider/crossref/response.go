package crossref

import "github.com/korima-app/korima-backend/internal/provider"

// apiList is the envelope of GET /works.
type apiList struct {
	Message struct {
		Items []apiWork `json:"items"`
	} `json:"message"`
}

// apiSingle is the envelope of GET /works/{doi}.
type apiSingle struct {
	Message *apiWork `json:"message"`
}

type apiWork struct {
	DOI            string      `json:"DOI"`
	Title          []string    `json:"title"`
	Author         []apiAuthor `json:"author"`
	Published      apiDate     `json:"published"`
	ContainerTitle []string    `json:"container-title"`
	Publisher      string      `json:"publisher"`
	Subject        []string    `json:"subject"`
	Abstract       string      `json:"abstract"`
}

type apiAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type apiDate struct {
	DateParts [][]int `json:"date-parts"`
}

func (w apiWork) toWork() provider.Work {
	out := provider.Work{
		DOI:       w.DOI,
		Title:     provider.UntitledWork,
		Publisher: w.Publisher,
		Subjects:  w.Subject,
		Abstract:  w.Abstract,
	}
	if len(w.Title) > 0 && w.Title[0] != "" {
		out.Title = w.Title[0]
	}
	if len(w.ContainerTitle) > 0 {
		out.Journal = w.ContainerTitle[0]
	}
	if len(w.Published.DateParts) > 0 && len(w.Published.DateParts[0]) > 0 {
		year := w.Published.DateParts[0][0]
		out.Year = &year
	}

	authors := make([]provider.Author, len(w.Author))
	for i, a := range w.Author {
		authors[i] = provider.Author{Given: a.Given, Family: a.Family}
	}
	out.Authors = provider.FormatAuthors(authors)
	return out
}
