package runlog

// Canonical column names shared by all robot types. Per-robot deviations
// (the jetbot distance swap) live in the robot descriptor table, not here.
const (
	ColTime          = "time.s"
	ColPosX          = "position.x.m"
	ColPosY          = "position.y.m"
	ColVelX          = "velocity.x.m_s"
	ColVelY          = "velocity.y.m_s"
	ColBodyVelX      = "body_velocity.x.m_s"
	ColBodyVelY      = "body_velocity.y.m_s"
	ColTargetX       = "target.x.m"
	ColTargetY       = "target.y.m"
	ColDistance      = "distance_to_target.m"
	ColGoalsReported = "goals_reached.count"
)
