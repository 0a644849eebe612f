package normalize_test

import (
	"errors"
	"testing"
	"time"

	normalize "github.com/okian/stride/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

var testRoster = map[string]string{
	"Ana":  "Blue",
	"Ben":  "Blue",
	"Cleo": "Red",
	"Dra":  "Red",
}

func TestNormalizeLong(t *testing.T) {
	Convey("Given a long-format table", t, func() {
		n := normalize.New()
		table := normalize.Table{
			Columns: []string{"Date", "Participant", "Team", "Steps"},
			Rows: [][]string{
				{"2024-01-01", "Ana", "Blue", "7999"},
				{"2024-01-01", "Ben", "Blue", "8000"},
				{"2024-01-02", "Ana", "Blue", "15000"},
			},
		}

		Convey("When normalizing with the long format", func() {
			records, report, err := n.Normalize(table, normalize.FormatLong)

			Convey("Then each row becomes one record with coerced types", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 3)
				So(records[0].Date, ShouldEqual, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
				So(records[0].Participant, ShouldEqual, "Ana")
				So(records[0].Team, ShouldEqual, "Blue")
				So(records[0].Steps, ShouldEqual, 7999)
				So(report.RowsRead, ShouldEqual, 3)
				So(report.RecordsEmitted, ShouldEqual, 3)
			})
		})

		Convey("When normalizing with auto detection", func() {
			records, _, err := n.Normalize(table, normalize.FormatAuto)

			Convey("Then the Participant column selects the long path", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 3)
			})
		})

		Convey("When a row has an empty Steps cell", func() {
			table.Rows = append(table.Rows, []string{"2024-01-02", "Ben", "Blue", ""})
			records, report, err := n.Normalize(table, normalize.FormatLong)

			Convey("Then the row is dropped, not zero-filled", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 3)
				So(report.CellsDropped, ShouldEqual, 1)
			})
		})

		Convey("When a date is malformed", func() {
			table.Rows[1][0] = "not-a-date"
			_, _, err := n.Normalize(table, normalize.FormatLong)

			Convey("Then the whole pass fails with ErrParse", func() {
				So(errors.Is(err, normalize.ErrParse), ShouldBeTrue)
			})
		})

		Convey("When a step count is malformed", func() {
			table.Rows[1][3] = "lots"
			_, _, err := n.Normalize(table, normalize.FormatLong)

			So(errors.Is(err, normalize.ErrParse), ShouldBeTrue)
		})

		Convey("When a step count is negative", func() {
			table.Rows[1][3] = "-200"
			_, _, err := n.Normalize(table, normalize.FormatLong)

			Convey("Then validation rejects it at ingestion", func() {
				So(errors.Is(err, normalize.ErrParse), ShouldBeTrue)
			})
		})

		Convey("When the same (date, participant) appears twice", func() {
			table.Rows = append(table.Rows, []string{"2024-01-01", "Ana", "Blue", "500"})
			_, _, err := n.Normalize(table, normalize.FormatLong)

			Convey("Then the pass fails with ErrDuplicateRecord", func() {
				So(errors.Is(err, normalize.ErrDuplicateRecord), ShouldBeTrue)
			})
		})

		Convey("When a required column is missing", func() {
			table.Columns = []string{"Date", "Participant", "Steps"}
			for i := range table.Rows {
				table.Rows[i] = table.Rows[i][:3]
			}
			_, _, err := n.Normalize(table, normalize.FormatLong)

			So(errors.Is(err, normalize.ErrParse), ShouldBeTrue)
		})
	})
}

func TestNormalizeWide(t *testing.T) {
	Convey("Given a wide-format table and a roster", t, func() {
		n := normalize.New(normalize.WithRoster(testRoster))
		table := normalize.Table{
			Columns: []string{"Date", "Ana", "Ben", "Cleo", "Dra"},
			Rows: [][]string{
				{"2024-01-01", "7000", "8000", "9000", "10000"},
				{"2024-01-02", "7100", "8100", "9100", "10100"},
				{"2024-01-03", "7200", "8200", "9200", "10200"},
			},
		}

		Convey("When every cell is filled", func() {
			records, report, err := n.Normalize(table, normalize.FormatWide)

			Convey("Then N participants times D dates records come out", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 4*3)
				So(report.RecordsEmitted, ShouldEqual, 12)
				So(report.CellsDropped, ShouldEqual, 0)
			})

			Convey("And teams are attached from the roster", func() {
				So(err, ShouldBeNil)
				byName := map[string]string{}
				for _, r := range records {
					byName[r.Participant] = r.Team
				}
				So(byName["Ana"], ShouldEqual, "Blue")
				So(byName["Cleo"], ShouldEqual, "Red")
			})
		})

		Convey("When K cells are missing", func() {
			table.Rows[0][1] = ""
			table.Rows[1][3] = ""
			table.Rows[2][4] = ""
			records, report, err := n.Normalize(table, normalize.FormatWide)

			Convey("Then exactly N*D-K records come out", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 12-3)
				So(report.CellsDropped, ShouldEqual, 3)
			})
		})

		Convey("When auto detection sees no Participant column", func() {
			records, _, err := n.Normalize(table, normalize.FormatAuto)

			Convey("Then the wide path is taken", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 12)
			})
		})

		Convey("When a participant is missing from the roster", func() {
			table.Columns[2] = "Eve"

			Convey("And the policy is the default assign", func() {
				records, report, err := n.Normalize(table, normalize.FormatWide)

				Convey("Then the record gets the sentinel team and the miss is reported", func() {
					So(err, ShouldBeNil)
					found := false
					for _, r := range records {
						if r.Participant == "Eve" {
							found = true
							So(r.Team, ShouldEqual, normalize.DefaultUnknownTeam)
						}
					}
					So(found, ShouldBeTrue)
					So(report.UnknownParticipants, ShouldResemble, []string{"Eve"})
				})
			})

			Convey("And the policy is reject", func() {
				strict := normalize.New(
					normalize.WithRoster(testRoster),
					normalize.WithUnknownPolicy(normalize.RejectUnknown),
				)
				_, _, err := strict.Normalize(table, normalize.FormatWide)

				Convey("Then the pass fails with ErrUnknownParticipant", func() {
					So(errors.Is(err, normalize.ErrUnknownParticipant), ShouldBeTrue)
				})
			})

			Convey("And a custom sentinel label is configured", func() {
				custom := normalize.New(
					normalize.WithRoster(testRoster),
					normalize.WithUnknownTeam("Unassigned"),
				)
				records, _, err := custom.Normalize(table, normalize.FormatWide)

				So(err, ShouldBeNil)
				for _, r := range records {
					if r.Participant == "Eve" {
						So(r.Team, ShouldEqual, "Unassigned")
					}
				}
			})
		})

		Convey("When a cell exceeds the step ceiling", func() {
			capped := normalize.New(
				normalize.WithRoster(testRoster),
				normalize.WithMaxSteps(9500),
			)
			_, _, err := capped.Normalize(table, normalize.FormatWide)

			Convey("Then the pass fails with ErrParse", func() {
				So(errors.Is(err, normalize.ErrParse), ShouldBeTrue)
			})
		})

		Convey("When the ceiling is disabled", func() {
			open := normalize.New(
				normalize.WithRoster(testRoster),
				normalize.WithMaxSteps(0),
			)
			table.Rows[0][1] = "999999"
			records, _, err := open.Normalize(table, normalize.FormatWide)

			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 12)
		})

		Convey("When a spreadsheet export writes whole floats", func() {
			table.Rows[0][1] = "7000.0"
			records, _, err := n.Normalize(table, normalize.FormatWide)

			Convey("Then they coerce to integers", func() {
				So(err, ShouldBeNil)
				So(records[0].Steps, ShouldEqual, 7000)
			})
		})

		Convey("When the Date column is absent", func() {
			table.Columns[0] = "Day"
			_, _, err := n.Normalize(table, normalize.FormatWide)

			So(errors.Is(err, normalize.ErrParse), ShouldBeTrue)
		})
	})
}

func TestNormalizeFormatValidation(t *testing.T) {
	Convey("Given a normalizer", t, func() {
		n := normalize.New()

		Convey("When an unknown format is requested", func() {
			_, _, err := n.Normalize(normalize.Table{}, normalize.Format("sideways"))

			Convey("Then the call fails with ErrUnknownFormat", func() {
				So(errors.Is(err, normalize.ErrUnknownFormat), ShouldBeTrue)
			})
		})
	})
}
