package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/realitygames/fantasy-league/internal/domain/castaway"
	"github.com/realitygames/fantasy-league/internal/domain/league"
	"github.com/realitygames/fantasy-league/internal/domain/roster"
	"github.com/realitygames/fantasy-league/internal/domain/scoring"
	"github.com/realitygames/fantasy-league/internal/domain/season"
	"github.com/realitygames/fantasy-league/internal/domain/user"
)

type CastawayTotal struct {
	CastawayID  string
	Name        string
	TotalPoints int
}

// PickPopularity is one castaway's pick share within a single episode's
// snapshot set. Rates within one episode sum to 1.
type PickPopularity struct {
	EpisodeID     string
	EpisodeNumber int
	CastawayID    string
	Name          string
	PickCount     int
	PickRate      float64
}

type WeeklyLeaderboardRow struct {
	UserID      string
	DisplayName string
	Points      int
}

// PickEfficiencyRow compares a member's actual points with the points they
// would have earned starting their highest-scoring rostered castaway every
// scored episode.
type PickEfficiencyRow struct {
	UserID       string
	DisplayName  string
	ActualPoints int
	BestPoints   int
	Efficiency   float64
}

// ConsistencyRow holds the mean and population standard deviation of a
// member's weekly points across scored episodes.
type ConsistencyRow struct {
	UserID      string
	DisplayName string
	MeanPoints  float64
	StdDev      float64
}

// RankMovementRow is a member's rank change between the two most recent
// scored episodes. Positive delta means the member climbed.
type RankMovementRow struct {
	UserID       string
	DisplayName  string
	PreviousRank int
	CurrentRank  int
	Delta        int
}

type StatOfTheWeek struct {
	EpisodeID     string
	EpisodeNumber int
	Headline      string
	TopCastawayID string
	TopPoints     int
	AutoPickCount int

	// Bold pick: the least-popular snapshotted pick that still scored
	// positive points. Empty when no positive scorer was picked.
	BoldPickCastawayID string
	BoldPickPoints     int
}

// LeagueAnalytics bundles the derived views the league page renders.
type LeagueAnalytics struct {
	Standings           []scoring.Standing
	WeeklyLeaderboard   []WeeklyLeaderboardRow
	CastawayLeaderboard []CastawayTotal
	PickPopularity      []PickPopularity
	PickEfficiency      []PickEfficiencyRow
	Consistency         []ConsistencyRow
	RankMovement        []RankMovementRow
	StatOfTheWeek       *StatOfTheWeek
}

type leagueEnsurer interface {
	EnsureLeagueUpToDate(ctx context.Context, leagueID string) error
}

type StatsService struct {
	leagueRepo   league.Repository
	seasonRepo   season.Repository
	castawayRepo castaway.Repository
	rosterRepo   roster.Repository
	userRepo     user.Repository
	scoringRepo  scoring.Repository
	ensurer      leagueEnsurer
}

func NewStatsService(
	leagueRepo league.Repository,
	seasonRepo season.Repository,
	castawayRepo castaway.Repository,
	rosterRepo roster.Repository,
	userRepo user.Repository,
	scoringRepo scoring.Repository,
	ensurer leagueEnsurer,
) *StatsService {
	return &StatsService{
		leagueRepo:   leagueRepo,
		seasonRepo:   seasonRepo,
		castawayRepo: castawayRepo,
		rosterRepo:   rosterRepo,
		userRepo:     userRepo,
		scoringRepo:  scoringRepo,
		ensurer:      ensurer,
	}
}

// GetLeagueAnalytics assembles standings, leaderboards, pick popularity and
// the stat of the week for one league. The source lists are independent, so
// they load concurrently.
func (s *StatsService) GetLeagueAnalytics(ctx context.Context, leagueID, userID string) (LeagueAnalytics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetLeagueAnalytics")
	defer span.End()

	item, err := s.requireMemberLeague(ctx, leagueID, userID)
	if err != nil {
		return LeagueAnalytics{}, err
	}

	if err := s.ensurer.EnsureLeagueUpToDate(ctx, item.ID); err != nil {
		return LeagueAnalytics{}, err
	}

	var (
		standings  []scoring.Standing
		userPoints []scoring.UserEpisodePoints
		snapshots  []scoring.PickSnapshot
		scores     []scoring.EpisodeScore
		castaways  []castaway.Castaway
		episodes   []season.Episode
		members    []league.Membership
		rosters    []roster.Entry
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		standings, err = s.scoringRepo.ListStandingsByLeague(ctx, item.ID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		userPoints, err = s.scoringRepo.ListUserEpisodePointsByLeague(ctx, item.ID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		snapshots, err = s.scoringRepo.ListSnapshotsByLeague(ctx, item.ID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		scores, err = s.scoringRepo.ListScoresBySeason(ctx, item.SeasonID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		castaways, err = s.castawayRepo.ListBySeason(ctx, item.SeasonID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		episodes, err = s.seasonRepo.ListEpisodesBySeason(ctx, item.SeasonID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		members, err = s.leagueRepo.ListMembers(ctx, item.ID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		rosters, err = s.rosterRepo.ListByLeague(ctx, item.ID)
		return err
	})
	if err := p.Wait(); err != nil {
		return LeagueAnalytics{}, fmt.Errorf("load league analytics: %w", err)
	}

	names, err := s.memberNames(ctx, members)
	if err != nil {
		return LeagueAnalytics{}, err
	}
	castawayNames := make(map[string]string, len(castaways))
	for _, c := range castaways {
		castawayNames[c.ID] = c.Name
	}

	latest := latestScoredEpisode(episodes)
	scored := scoredEpisodesAsc(episodes)

	analytics := LeagueAnalytics{
		Standings:           standings,
		WeeklyLeaderboard:   weeklyLeaderboard(userPoints, names, latest),
		CastawayLeaderboard: castawayLeaderboard(scores, castawayNames),
		PickPopularity:      pickPopularity(snapshots, episodes, castawayNames),
		PickEfficiency:      pickEfficiency(members, rosters, scores, userPoints, names, scored),
		Consistency:         consistencyRows(members, userPoints, names, scored),
		RankMovement:        rankMovement(item.ID, members, userPoints, names, scored),
	}
	analytics.StatOfTheWeek = statOfTheWeek(latest, scores, snapshots, castawayNames)

	return analytics, nil
}

func (s *StatsService) memberNames(ctx context.Context, members []league.Membership) (map[string]string, error) {
	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	users, err := s.userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list member profiles: %w", err)
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}
	return names, nil
}

func scoredEpisodesAsc(episodes []season.Episode) []season.Episode {
	scored := make([]season.Episode, 0, len(episodes))
	for _, e := range episodes {
		if e.IsScored {
			scored = append(scored, e)
		}
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].Number < scored[j].Number })
	return scored
}

func latestScoredEpisode(episodes []season.Episode) *season.Episode {
	var latest *season.Episode
	for i := range episodes {
		e := episodes[i]
		if !e.IsScored {
			continue
		}
		if latest == nil || e.Number > latest.Number {
			latest = &e
		}
	}
	return latest
}

func weeklyLeaderboard(points []scoring.UserEpisodePoints, names map[string]string, latest *season.Episode) []WeeklyLeaderboardRow {
	if latest == nil {
		return nil
	}

	rows := make([]WeeklyLeaderboardRow, 0)
	for _, p := range points {
		if p.EpisodeID != latest.ID {
			continue
		}
		rows = append(rows, WeeklyLeaderboardRow{
			UserID:      p.UserID,
			DisplayName: names[p.UserID],
			Points:      p.Points,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].UserID < rows[j].UserID
	})
	return rows
}

func castawayLeaderboard(scores []scoring.EpisodeScore, names map[string]string) []CastawayTotal {
	totals := map[string]int{}
	for _, sc := range scores {
		totals[sc.CastawayID] += sc.Points
	}

	rows := make([]CastawayTotal, 0, len(totals))
	for castawayID, total := range totals {
		rows = append(rows, CastawayTotal{
			CastawayID:  castawayID,
			Name:        names[castawayID],
			TotalPoints: total,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		return rows[i].CastawayID < rows[j].CastawayID
	})
	return rows
}

// pickPopularity groups snapshots by episode, so a castaway picked by every
// member in one week still reads as unpopular in another.
func pickPopularity(snapshots []scoring.PickSnapshot, episodes []season.Episode, names map[string]string) []PickPopularity {
	numbers := make(map[string]int, len(episodes))
	for _, e := range episodes {
		numbers[e.ID] = e.Number
	}

	counts := map[string]map[string]int{}
	totals := map[string]int{}
	for _, snap := range snapshots {
		if counts[snap.EpisodeID] == nil {
			counts[snap.EpisodeID] = map[string]int{}
		}
		counts[snap.EpisodeID][snap.CastawayID]++
		totals[snap.EpisodeID]++
	}

	rows := make([]PickPopularity, 0, len(snapshots))
	for episodeID, perCastaway := range counts {
		for castawayID, count := range perCastaway {
			rows = append(rows, PickPopularity{
				EpisodeID:     episodeID,
				EpisodeNumber: numbers[episodeID],
				CastawayID:    castawayID,
				Name:          names[castawayID],
				PickCount:     count,
				PickRate:      float64(count) / float64(totals[episodeID]),
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EpisodeNumber != rows[j].EpisodeNumber {
			return rows[i].EpisodeNumber < rows[j].EpisodeNumber
		}
		if rows[i].PickCount != rows[j].PickCount {
			return rows[i].PickCount > rows[j].PickCount
		}
		return rows[i].CastawayID < rows[j].CastawayID
	})
	return rows
}

// pickEfficiency sums, per member, the best score among their rostered
// castaways for every scored episode and compares it with what they actually
// earned. A member cannot out-earn their best line-up, so the ratio stays in
// [0, 1].
func pickEfficiency(
	members []league.Membership,
	rosters []roster.Entry,
	scores []scoring.EpisodeScore,
	userPoints []scoring.UserEpisodePoints,
	names map[string]string,
	scored []season.Episode,
) []PickEfficiencyRow {
	if len(scored) == 0 {
		return nil
	}

	rosterByUser := map[string][]string{}
	for _, entry := range rosters {
		rosterByUser[entry.UserID] = append(rosterByUser[entry.UserID], entry.CastawayID)
	}
	scoreByEpisodeCastaway := map[string]map[string]int{}
	for _, sc := range scores {
		if scoreByEpisodeCastaway[sc.EpisodeID] == nil {
			scoreByEpisodeCastaway[sc.EpisodeID] = map[string]int{}
		}
		scoreByEpisodeCastaway[sc.EpisodeID][sc.CastawayID] = sc.Points
	}
	actualByUser := map[string]int{}
	for _, p := range userPoints {
		actualByUser[p.UserID] += p.Points
	}

	rows := make([]PickEfficiencyRow, 0, len(members))
	for _, m := range members {
		castawayIDs := rosterByUser[m.UserID]
		if len(castawayIDs) == 0 {
			continue
		}

		best := 0
		for _, episode := range scored {
			episodeBest := 0
			for i, castawayID := range castawayIDs {
				points := scoreByEpisodeCastaway[episode.ID][castawayID]
				if i == 0 || points > episodeBest {
					episodeBest = points
				}
			}
			best += episodeBest
		}

		row := PickEfficiencyRow{
			UserID:       m.UserID,
			DisplayName:  names[m.UserID],
			ActualPoints: actualByUser[m.UserID],
			BestPoints:   best,
		}
		if best > 0 {
			row.Efficiency = math.Max(0, float64(row.ActualPoints)/float64(best))
		} else {
			// Nothing rostered could have scored better.
			row.Efficiency = 1
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Efficiency != rows[j].Efficiency {
			return rows[i].Efficiency > rows[j].Efficiency
		}
		return rows[i].UserID < rows[j].UserID
	})
	return rows
}

// consistencyRows computes mean and population standard deviation of weekly
// points per member. Episodes without a points row count as zero.
func consistencyRows(
	members []league.Membership,
	userPoints []scoring.UserEpisodePoints,
	names map[string]string,
	scored []season.Episode,
) []ConsistencyRow {
	if len(scored) == 0 {
		return nil
	}

	pointsByUserEpisode := map[string]map[string]int{}
	for _, p := range userPoints {
		if pointsByUserEpisode[p.UserID] == nil {
			pointsByUserEpisode[p.UserID] = map[string]int{}
		}
		pointsByUserEpisode[p.UserID][p.EpisodeID] = p.Points
	}

	n := float64(len(scored))
	rows := make([]ConsistencyRow, 0, len(members))
	for _, m := range members {
		sum := 0
		for _, episode := range scored {
			sum += pointsByUserEpisode[m.UserID][episode.ID]
		}
		mean := float64(sum) / n

		variance := 0.0
		for _, episode := range scored {
			d := float64(pointsByUserEpisode[m.UserID][episode.ID]) - mean
			variance += d * d
		}
		variance /= n

		rows = append(rows, ConsistencyRow{
			UserID:      m.UserID,
			DisplayName: names[m.UserID],
			MeanPoints:  mean,
			StdDev:      math.Sqrt(variance),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].MeanPoints != rows[j].MeanPoints {
			return rows[i].MeanPoints > rows[j].MeanPoints
		}
		return rows[i].UserID < rows[j].UserID
	})
	return rows
}

// rankMovement diffs each member's rank between the two most recent scored
// episodes, using the same dense ranking as the standings table.
func rankMovement(
	leagueID string,
	members []league.Membership,
	userPoints []scoring.UserEpisodePoints,
	names map[string]string,
	scored []season.Episode,
) []RankMovementRow {
	if len(scored) < 2 {
		return nil
	}
	previous := scored[len(scored)-2]
	current := scored[len(scored)-1]

	ranksThrough := func(cutoff int) map[string]int {
		totals := make(map[string]int, len(members))
		for _, m := range members {
			totals[m.UserID] = 0
		}
		for _, episode := range scored {
			if episode.Number > cutoff {
				continue
			}
			for _, p := range userPoints {
				if p.EpisodeID == episode.ID {
					totals[p.UserID] += p.Points
				}
			}
		}

		ranks := make(map[string]int, len(totals))
		for _, standing := range scoring.RankStandings(leagueID, totals, time.Time{}) {
			ranks[standing.UserID] = standing.Rank
		}
		return ranks
	}

	previousRanks := ranksThrough(previous.Number)
	currentRanks := ranksThrough(current.Number)

	rows := make([]RankMovementRow, 0, len(members))
	for _, m := range members {
		rows = append(rows, RankMovementRow{
			UserID:       m.UserID,
			DisplayName:  names[m.UserID],
			PreviousRank: previousRanks[m.UserID],
			CurrentRank:  currentRanks[m.UserID],
			Delta:        previousRanks[m.UserID] - currentRanks[m.UserID],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Delta != rows[j].Delta {
			return rows[i].Delta > rows[j].Delta
		}
		return rows[i].UserID < rows[j].UserID
	})
	return rows
}

func statOfTheWeek(latest *season.Episode, scores []scoring.EpisodeScore, snapshots []scoring.PickSnapshot, names map[string]string) *StatOfTheWeek {
	if latest == nil {
		return nil
	}

	var top *scoring.EpisodeScore
	episodeScores := map[string]int{}
	for i := range scores {
		sc := scores[i]
		if sc.EpisodeID != latest.ID {
			continue
		}
		episodeScores[sc.CastawayID] = sc.Points
		if top == nil || sc.Points > top.Points {
			top = &sc
		}
	}
	if top == nil {
		return nil
	}

	autoPicks := 0
	pickCounts := map[string]int{}
	for _, snap := range snapshots {
		if snap.EpisodeID != latest.ID {
			continue
		}
		pickCounts[snap.CastawayID]++
		if snap.IsAuto {
			autoPicks++
		}
	}

	name := names[top.CastawayID]
	if name == "" {
		name = top.CastawayID
	}
	stat := &StatOfTheWeek{
		EpisodeID:     latest.ID,
		EpisodeNumber: latest.Number,
		Headline:      fmt.Sprintf("%s led episode %d with %d points", name, latest.Number, top.Points),
		TopCastawayID: top.CastawayID,
		TopPoints:     top.Points,
		AutoPickCount: autoPicks,
	}

	// Bold pick: least-picked castaway that still scored positive points.
	for castawayID, count := range pickCounts {
		points := episodeScores[castawayID]
		if points <= 0 {
			continue
		}
		if stat.BoldPickCastawayID == "" ||
			count < pickCounts[stat.BoldPickCastawayID] ||
			(count == pickCounts[stat.BoldPickCastawayID] && points > stat.BoldPickPoints) ||
			(count == pickCounts[stat.BoldPickCastawayID] && points == stat.BoldPickPoints && castawayID < stat.BoldPickCastawayID) {
			stat.BoldPickCastawayID = castawayID
			stat.BoldPickPoints = points
		}
	}

	return stat
}

func (s *StatsService) requireMemberLeague(ctx context.Context, leagueID, userID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	userID = strings.TrimSpace(userID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if userID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
	}

	if _, isMember, err := s.leagueRepo.GetMember(ctx, leagueID, userID); err != nil {
		return league.League{}, fmt.Errorf("get league member: %w", err)
	} else if !isMember {
		return league.League{}, fmt.Errorf("%w: not a member of this league", ErrUnauthorized)
	}

	return item, nil
}
