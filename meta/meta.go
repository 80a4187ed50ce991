// meta/meta.go
package meta

import "football/game"

// START_STATE is the state evaluated by default: attacker 1 on cell 5 with
// the ball, attacker 2 on cell 9, defender on cell 8.
var START_STATE = game.State{B1: 5, B2: 9, R: 8, Ball: 1}

// DATA_DIR holds the <name>_policy.json strategy files.
const DATA_DIR = "data"

// OUT_DIR receives experiment records and charts.
const OUT_DIR = "experiments"

// SWEEP_Q is the fixed q while sweeping p.
const SWEEP_Q = 0.7

// SWEEP_P is the fixed p while sweeping q.
const SWEEP_P = 0.3

// EPISODES is the number of sampled episodes used to check a solved value.
const EPISODES = 10000
