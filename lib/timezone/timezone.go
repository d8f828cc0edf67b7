package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		panic(err)
	}
}

// force the clock to Brasília time because exam dates and registration
// windows on source sites are published in local time, which drifts a
// day when the server happens to run in another timezone
func Now() time.Time {
	return time.Now().In(Location)
}
