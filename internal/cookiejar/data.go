package cookiejar

/*
Responsibilities

- Parse a Netscape-format cookie file
- Decide which cookies apply to a given request URL
- Render the applicable cookies as a single Cookie header value

The jar never makes network requests and never mutates its entries after
loading; it is a pure lookup table for the fetcher.
*/

// Cookie is one line of a Netscape cookie file.
type Cookie struct {
	Domain            string
	IncludeSubdomains bool
	Path              string
	Secure            bool
	Expiry            int64
	Name              string
	Value             string
}
