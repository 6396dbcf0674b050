package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Tokyo")
	if err != nil {
		panic(err)
	}
}

// force the portal's timezone because the deploy region is not
// guaranteed to be in Japan, and calendar math against
// <time.Time>.Year()/Month()/Day() must agree with what the
// portal renders
func Now() time.Time {
	return time.Now().In(Location)
}
