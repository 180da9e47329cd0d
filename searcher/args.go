package searcher

// Playout outcomes from the acting player's perspective

const WIN = 1
const LOSS = -WIN
const DRAW = 0
