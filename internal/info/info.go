// Package info describes a single address or network field by field.
package info

import (
	"fmt"
	"io"
	"net/netip"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/valyala/fasttemplate"

	"github.com/firefly-engineering/ipkit/internal/errors"
	"github.com/firefly-engineering/ipkit/internal/network"
)

// Field is one line of an info record. Key names the field in templates.
type Field struct {
	Key   string
	Label string
	Value string
}

// Fields describes p. IPv4 networks get broadcast, usable host and IPv6
// mapping fields that IPv6 networks do not have.
func Fields(p netip.Prefix) []Field {
	v4 := p.Addr().Is4()
	addr := p.Addr()

	fields := []Field{
		{"address", "address", addr.String()},
		{"network", "network", p.Masked().Addr().String()},
		{"hosts_range", "hosts range", network.FirstHost(p).String() + " - " + network.LastHost(p).String()},
	}
	if v4 {
		fields = append(fields, Field{"broadcast", "broadcast", network.Broadcast(p).String()})
	}
	fields = append(fields, Field{"hosts", "hosts", network.Size(p).String()})
	if v4 {
		fields = append(fields, Field{"usable_hosts", "usable hosts", network.UsableHosts(p).String()})
	}
	fields = append(fields,
		Field{"netmask", "net mask", network.Netmask(p).String()},
		Field{"hostmask", "host mask", network.Hostmask(p).String()},
		Field{"prefix", "CIDR", fmt.Sprintf("/%d", p.Bits())},
		Field{"full", "full", p.String()},
		Field{"binary_address", "binary address", Binary(addr)},
		Field{"binary_netmask", "binary net mask", Binary(network.Netmask(p))},
	)
	if v4 {
		fields = append(fields, Field{"ipv6_mapping", "ipv6 mapping", netip.AddrFrom16(addr.As16()).String()})
	}
	return fields
}

// Binary renders addr with each IPv4 octet or IPv6 segment in base 2.
func Binary(addr netip.Addr) string {
	if addr.Is4() {
		b := addr.As4()
		parts := make([]string, len(b))
		for i, octet := range b {
			parts[i] = fmt.Sprintf("%08b", octet)
		}
		return strings.Join(parts, ".")
	}

	b := addr.As16()
	parts := make([]string, 8)
	for i := range parts {
		parts[i] = fmt.Sprintf("%016b", uint16(b[2*i])<<8|uint16(b[2*i+1]))
	}
	return strings.Join(parts, ":")
}

// Options controls how records are rendered.
type Options struct {
	// Padding aligns values in a column after the labels.
	Padding bool
	// Format replaces the default layout with a {{key}} template.
	Format string
}

// Formatter renders info records.
type Formatter struct {
	padding  bool
	template *fasttemplate.Template
}

// NewFormatter validates opts.Format, if any.
func NewFormatter(opts Options) (*Formatter, error) {
	f := &Formatter{padding: opts.Padding}
	if opts.Format != "" {
		tmpl, err := fasttemplate.NewTemplate(opts.Format, "{{", "}}")
		if err != nil {
			return nil, errors.ValidationError(fmt.Sprintf("invalid format %q: %v", opts.Format, err))
		}
		f.template = tmpl
	}
	return f, nil
}

// Format renders the record for p without a trailing newline.
func (f *Formatter) Format(p netip.Prefix) (string, error) {
	fields := Fields(p)
	if f.template != nil {
		return f.execute(fields)
	}

	width := 0
	if f.padding {
		for _, fd := range fields {
			width = max(width, len(fd.Label)+2)
		}
	}
	label := lipgloss.NewStyle().Width(width)

	lines := make([]string, len(fields))
	for i, fd := range fields {
		if f.padding {
			lines[i] = label.Render(fd.Label+":") + fd.Value
		} else {
			lines[i] = fd.Label + ": " + fd.Value
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (f *Formatter) execute(fields []Field) (string, error) {
	values := make(map[string]string, len(fields))
	for _, fd := range fields {
		values[fd.Key] = fd.Value
	}

	return f.template.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		tag = strings.TrimSpace(tag)
		v, ok := values[tag]
		if !ok && !IsKey(tag) {
			return 0, errors.ValidationError(fmt.Sprintf("unknown format field %q", tag))
		}
		return w.Write([]byte(v))
	})
}

// Keys lists every template key in record order.
var Keys = []string{
	"address", "network", "hosts_range", "broadcast", "hosts", "usable_hosts",
	"netmask", "hostmask", "prefix", "full", "binary_address", "binary_netmask",
	"ipv6_mapping",
}

// IsKey reports whether key names a field of some record.
func IsKey(key string) bool {
	return slices.Contains(Keys, key)
}
