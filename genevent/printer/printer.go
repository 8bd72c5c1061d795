package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/genevent-go/genevent"
)

const separator = "________________________________________________________________________________"

// errWriter remembers the first write error so rendering code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}

	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(line string) {
	ew.printf("%s\n", line)
}

// Listing writes the event as a table: particles of the current version in merged order,
// grouped under their production vertex.
func Listing(w io.Writer, event *genevent.Event) error {
	ew := &errWriter{w: w}
	version := event.CurrentVersion()
	versionName, _ := event.VersionName(version)
	particles := event.MergedParticles()

	ew.println(separator)
	ew.printf("GenEvent: #%d\n", event.EventNumber())
	ew.printf(" Version: %d (%s) of %d\n", version, versionName, event.LastVersion())
	ew.printf(" Entries this event: %d vertices, %d particles.\n", len(event.Vertices()), len(particles))
	ew.println("                                    GenParticle Legend")
	ew.println("        Barcode   PDG ID      ( Px,       Py,       Pz,     E ) Stat  ProdVtx")
	ew.println(separator)

	group := -1
	for _, p := range particles {
		if p.ProductionVertex() != group {
			group = p.ProductionVertex()
			ew.println(groupHeader(event, group))
		}

		ew.println(listingLine(p))
	}

	ew.println(separator)

	return ew.err
}

// Content writes everything the event owns, deleted entities included, with their version ranges.
func Content(w io.Writer, event *genevent.Event) error {
	ew := &errWriter{w: w}

	ew.printf("GenEvent: #%d current version: %d last version: %d\n",
		event.EventNumber(), event.CurrentVersion(), event.LastVersion())

	for _, record := range event.Versions() {
		ew.printf(" Version %d (%s): +%d particles +%d vertices -%d particles -%d vertices\n",
			record.Index(), record.Name(),
			len(record.Particles()), len(record.Vertices()),
			len(record.DeletedParticles()), len(record.DeletedVertices()))
	}

	ew.printf("Particles: %d\n", event.ParticleCount())
	for _, p := range event.AllParticles() {
		ew.println(ParticleLine(p))
	}

	ew.printf("Vertices: %d\n", event.VertexCount())
	for _, v := range event.AllVertices() {
		ew.println(VertexLine(v))
	}

	names := event.AttributeNames()
	ew.printf("Attributes: %d\n", len(names))
	for _, name := range names {
		attribute, _ := event.Attribute(name)
		ew.println(AttributeLine(name, attribute))
	}

	return ew.err
}

// Line writes the one-line rendering of p.
func Line(w io.Writer, p *genevent.Particle) error {
	_, err := fmt.Fprintln(w, ParticleLine(p))
	return err
}

// Lines writes the one-line rendering of every particle, e.g. the results of a search.
func Lines(w io.Writer, particles []*genevent.Particle) error {
	ew := &errWriter{w: w}
	for _, p := range particles {
		ew.println(ParticleLine(p))
	}

	return ew.err
}

// ParticleLine renders p in the standalone one-line format:
//
//	GenParticle: 5 (ver.:  0 ) ID:22 (P,E)=-3.813,0.113,-1.833,4.233 Stat: 1 PV: -3 EV: 0
func ParticleLine(p *genevent.Particle) string {
	momentum := p.Momentum()

	return fmt.Sprintf("GenParticle: %d (ver.: %s) ID:%d (P,E)=%s,%s,%s,%s Stat: %d PV: %d EV: %d",
		p.Barcode(), versionRange(p.VersionCreated(), p.VersionDeleted()), p.PDGID(),
		formatFloat(momentum.Px()), formatFloat(momentum.Py()), formatFloat(momentum.Pz()), formatFloat(momentum.E()),
		p.Status(), p.ProductionVertex(), p.EndVertex())
}

// VertexLine renders v in the standalone one-line format:
//
//	GenVertex: -3 (ver.:  0 ) I: 2,4 O: 5,6
func VertexLine(v *genevent.Vertex) string {
	line := fmt.Sprintf("GenVertex: %d (ver.: %s) I: %s O: %s",
		v.Barcode(), versionRange(v.VersionCreated(), v.VersionDeleted()),
		barcodes(v.ParticlesIn()), barcodes(v.ParticlesOut()))

	if position := v.Position(); !position.IsZero() {
		line += fmt.Sprintf(" @ %s,%s,%s,%s",
			formatFloat(position.X()), formatFloat(position.Y()), formatFloat(position.Z()), formatFloat(position.T()))
	}

	return line
}

// AttributeLine renders a named attribute.
func AttributeLine(name string, attribute genevent.Attribute) string {
	return "Attribute: " + name + " = " + attribute.Describe()
}

// listingLine renders p in the event-listing format: barcode, PDG id, momentum in scientific
// notation, status with optional subcode and the production vertex.
func listingLine(p *genevent.Particle) string {
	momentum := p.Momentum()

	var b strings.Builder
	fmt.Fprintf(&b, " %6d%9d %+9.6e,%+9.6e,%+9.6e,%+9.6e %3d",
		p.Barcode(), p.PDGID(), momentum.Px(), momentum.Py(), momentum.Pz(), momentum.E(), p.Status())

	if p.StatusSubcode() != 0 {
		fmt.Fprintf(&b, "-%-9d", p.StatusSubcode())
	} else {
		b.WriteString("          ")
	}

	if p.ProductionVertex() != 0 {
		fmt.Fprintf(&b, "%6d", p.ProductionVertex())
	}

	return b.String()
}

func groupHeader(event *genevent.Event, barcode int) string {
	if barcode == 0 {
		return "Incoming particles (no production vertex):"
	}

	v, ok := event.Vertex(barcode)
	if !ok {
		return fmt.Sprintf("Vertex: %d (unknown)", barcode)
	}

	return fmt.Sprintf("Vertex: %d I: %s", barcode, barcodes(v.ParticlesIn()))
}

func versionRange(created, deleted genevent.Version) string {
	if deleted == genevent.NeverDeleted {
		return fmt.Sprintf(" %d ", created)
	}

	return fmt.Sprintf("%d-%d", created, deleted)
}

func barcodes(particles []*genevent.Particle) string {
	parts := make([]string, len(particles))
	for i, p := range particles {
		parts[i] = strconv.Itoa(p.Barcode())
	}

	return strings.Join(parts, ",")
}

// formatFloat mimics the default iostream rendering with six significant digits.
func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', 6, 64)
}
