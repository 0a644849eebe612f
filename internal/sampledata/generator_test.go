package sampledata_test

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/okian/stride/internal/domain/normalize"
	sampledata "github.com/okian/stride/internal/sampledata"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWideTable(t *testing.T) {
	Convey("Given a generator with no missing cells", t, func() {
		g := sampledata.New(
			sampledata.WithDays(7),
			sampledata.WithMissingRate(0),
		)

		Convey("When generating a wide table", func() {
			table := g.WideTable()

			Convey("Then the shape matches days by participants", func() {
				So(table.Columns, ShouldHaveLength, 1+len(sampledata.DefaultRoster))
				So(table.Columns[0], ShouldEqual, "Date")
				So(table.Rows, ShouldHaveLength, 7)
				for _, row := range table.Rows {
					So(row, ShouldHaveLength, len(table.Columns))
				}
			})

			Convey("Then dates are consecutive ISO days", func() {
				So(table.Rows[0][0], ShouldEqual, "2024-01-01")
				So(table.Rows[6][0], ShouldEqual, "2024-01-07")
			})

			Convey("Then every cell is a plausible step count", func() {
				for _, row := range table.Rows {
					for _, cell := range row[1:] {
						steps, err := strconv.Atoi(cell)
						So(err, ShouldBeNil)
						So(steps, ShouldBeGreaterThanOrEqualTo, 0)
						So(steps, ShouldBeLessThan, 30000)
					}
				}
			})

			Convey("Then the output normalizes cleanly", func() {
				n := normalize.New(normalize.WithRoster(sampledata.DefaultRoster))
				records, report, err := n.Normalize(table, normalize.FormatAuto)
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 7*len(sampledata.DefaultRoster))
				So(report.UnknownParticipants, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a generator with a high missing rate", t, func() {
		g := sampledata.New(
			sampledata.WithDays(10),
			sampledata.WithMissingRate(0.5),
		)

		Convey("When generating a wide table", func() {
			table := g.WideTable()

			Convey("Then some cells are empty", func() {
				empty := 0
				for _, row := range table.Rows {
					for _, cell := range row[1:] {
						if cell == "" {
							empty++
						}
					}
				}
				So(empty, ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestLongTable(t *testing.T) {
	Convey("Given a generator with no missing cells", t, func() {
		g := sampledata.New(
			sampledata.WithDays(3),
			sampledata.WithMissingRate(0),
		)

		Convey("When generating a long table", func() {
			table := g.LongTable()

			Convey("Then one row exists per participant per day", func() {
				So(table.Columns, ShouldResemble, []string{"Date", "Participant", "Team", "Steps"})
				So(table.Rows, ShouldHaveLength, 3*len(sampledata.DefaultRoster))
			})

			Convey("Then the team column matches the roster", func() {
				for _, row := range table.Rows {
					So(row[2], ShouldEqual, sampledata.DefaultRoster[row[1]])
				}
			})

			Convey("Then the output normalizes cleanly without a roster", func() {
				records, _, err := normalize.New().Normalize(table, normalize.FormatAuto)
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, len(table.Rows))
			})
		})
	})
}

func TestDeterminism(t *testing.T) {
	Convey("Given two generators with the same seed", t, func() {
		first := sampledata.New(sampledata.WithSeed(7)).WideTable()
		second := sampledata.New(sampledata.WithSeed(7)).WideTable()

		Convey("Then they generate identical tables", func() {
			So(second, ShouldResemble, first)
		})
	})

	Convey("Given two generators with different seeds", t, func() {
		first := sampledata.New(sampledata.WithSeed(1)).WideTable()
		second := sampledata.New(sampledata.WithSeed(2)).WideTable()

		Convey("Then the data differs", func() {
			So(second, ShouldNotResemble, first)
		})
	})
}

func TestCSVOutput(t *testing.T) {
	Convey("Given a generated table", t, func() {
		g := sampledata.New(sampledata.WithDays(2), sampledata.WithMissingRate(0))
		table := g.WideTable()

		Convey("When writing it as CSV", func() {
			var buf bytes.Buffer
			err := sampledata.WriteCSV(&buf, table)

			Convey("Then the output has a header plus one line per row", func() {
				So(err, ShouldBeNil)
				lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
				So(lines, ShouldHaveLength, 1+len(table.Rows))
				So(lines[0], ShouldStartWith, "Date,")
			})
		})
	})
}

func TestRosterYAML(t *testing.T) {
	Convey("Given the default roster", t, func() {
		g := sampledata.New()

		Convey("When writing the roster fragment", func() {
			var buf bytes.Buffer
			err := g.WriteRosterYAML(&buf)

			Convey("Then every participant appears under the roster key", func() {
				So(err, ShouldBeNil)
				out := buf.String()
				So(out, ShouldStartWith, "roster:\n")
				for p, team := range sampledata.DefaultRoster {
					So(out, ShouldContainSubstring, p+": "+team)
				}
			})
		})
	})
}
