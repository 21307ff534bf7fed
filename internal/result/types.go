package result

import "time"

// RunMeta identifies one invocation of the run command and the labels its
// aggregated results are filed under.
type RunMeta struct {
	ID        string    `json:"id"`
	Location  string    `json:"location"`
	StackName string    `json:"stack_name"`
	APIName   string    `json:"api_name"`
	InnerRuns int       `json:"inner_runs"`
	OuterRuns int       `json:"outer_runs"`
	StartTime time.Time `json:"start_time"`
}
