package service

import (
	"encoding/json"
	"log"
	"os"
	"path"
	"strings"

	"github.com/fulldump/apitest"

	"github.com/fulldump/blurcars/utils"
)

// Save renders an acceptance response as a markdown API example. Nothing is
// written unless API_EXAMPLES_PATH is set.
func Save(response *apitest.Response, title, description string) {

	examplesPath := os.Getenv("API_EXAMPLES_PATH")
	if examplesPath == "" {
		return
	}

	request := response.Request

	query := request.URL.RawQuery
	if query != "" {
		query = "?" + query
	}
	requestBody := formatJSON(response.BodyRequestString())

	s := &strings.Builder{}

	s.WriteString("# " + title + "\n")
	s.WriteString(cropTabs(description) + "\n")

	s.WriteString("Curl example:\n\n```sh\ncurl ")
	if request.Method != "GET" {
		s.WriteString("-X " + request.Method + " ")
	}
	s.WriteString(`"https://example.com` + request.URL.Path + query + `"`)
	for _, k := range utils.GetKeys(request.Header) {
		for _, v := range request.Header[k] {
			s.WriteString(" \\\n-H \"" + k + ": " + v + "\"")
		}
	}
	if requestBody != "" {
		s.WriteString(" \\\n-d '" + requestBody + "'")
	}
	s.WriteString("\n```\n\n\n")

	s.WriteString("HTTP request/response example:\n\n```http\n")
	s.WriteString(request.Method + " " + request.URL.Path + query + " " + request.Proto + "\n")
	s.WriteString("Host: example.com\n")
	for _, k := range utils.GetKeys(request.Header) {
		for _, v := range request.Header[k] {
			s.WriteString(k + ": " + v + "\n")
		}
	}
	s.WriteString("\n" + requestBody + "\n\n")

	s.WriteString(response.Proto + " " + response.Status + "\n")
	for _, k := range utils.GetKeys(response.Header) {
		switch k {
		case "Date":
			s.WriteString("Date: Mon, 15 Aug 2022 02:08:13 GMT\n")
		case "X-Request-Id":
			s.WriteString("X-Request-Id: 00000000-0000-0000-0000-000000000000\n")
		default:
			for _, v := range response.Header[k] {
				s.WriteString(k + ": " + v + "\n")
			}
		}
	}
	s.WriteString("\n" + formatJSON(response.BodyString()) + "\n```\n\n\n")

	filename := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".md"
	p := path.Join(examplesPath, path.Clean(filename))
	log.Println("Saving", p)
	if err := os.WriteFile(p, []byte(s.String()), 0666); err != nil {
		log.Println("Saving err:", err)
	}
}

func formatJSON(body string) string {

	var i interface{}
	if err := json.Unmarshal([]byte(body), &i); err != nil {
		return body
	}

	b, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		return body
	}

	return string(b)
}

// cropTabs removes the common tab indentation of a raw string literal.
func cropTabs(d string) string {

	lines := strings.Split(d, "\n")

	minTabs := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tabs := len(line) - len(strings.TrimLeft(line, "\t"))
		if minTabs < 0 || tabs < minTabs {
			minTabs = tabs
		}
	}
	if minTabs <= 0 {
		return d
	}

	prefix := strings.Repeat("\t", minTabs)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}
