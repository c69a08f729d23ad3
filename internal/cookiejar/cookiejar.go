package cookiejar

import (
	"bufio"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Jar holds cookies loaded from a Netscape-format cookie file, in the
// order they were declared. Entries are immutable once loaded.
type Jar struct {
	cookies []Cookie
}

// NewJar returns an empty jar (no cookies ever match).
func NewJar() *Jar {
	return &Jar{}
}

// LoadNetscape parses a Netscape cookie file at path and returns a Jar
// populated with its entries. Comment lines ("#...") and blank lines are
// skipped; a line with fewer than 7 tab-separated fields is skipped.
func LoadNetscape(path string) (*Jar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	jar := &Jar{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 7 {
			continue
		}

		expiry, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			continue
		}

		jar.cookies = append(jar.cookies, Cookie{
			Domain:            fields[0],
			IncludeSubdomains: fields[1] == "TRUE",
			Path:              fields[2],
			Secure:            fields[3] == "TRUE",
			Expiry:            expiry,
			Name:              fields[5],
			Value:             fields[6],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return jar, nil
}

// Match returns the Cookie header value (in file order, joined by "; ")
// for every cookie applicable to target as of now. An empty string means
// no cookie applies.
func (j *Jar) Match(target url.URL, now time.Time) string {
	var parts []string
	for _, c := range j.cookies {
		if !domainMatches(c, target.Hostname()) {
			continue
		}
		if !strings.HasPrefix(target.Path, c.Path) {
			continue
		}
		if c.Secure && target.Scheme != "https" {
			continue
		}
		if c.Expiry != 0 && now.Unix() > c.Expiry {
			continue
		}
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

func domainMatches(c Cookie, host string) bool {
	if host == c.Domain {
		return true
	}
	return c.IncludeSubdomains && strings.HasSuffix(host, "."+c.Domain)
}
